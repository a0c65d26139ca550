package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPattern = errors.New("invalid glob pattern")
	ErrQueryFailed    = errors.New("query failed")
)
