// Package storage defines the base-directory file access abstraction.
// There is no write path: Ansuz only reads the files it queries.
package storage

import "time"

// FileMeta is lightweight metadata for a discovered file.
type FileMeta struct {
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for base-directory file operations.
type Provider interface {
	// Glob returns metadata for every file whose path (relative to the
	// base directory, slash-separated) matches pattern. Match order is
	// deterministic: lexical directory-walk order.
	Glob(pattern string) ([]FileMeta, error)
	// List returns metadata for every file under the base directory.
	List() ([]FileMeta, error)
	// Read returns the raw bytes of the file at path (relative to the
	// base directory).
	Read(path string) ([]byte, error)
}
