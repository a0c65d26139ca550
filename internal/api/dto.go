package api

import (
	"encoding/json"

	"github.com/starford/ansuz/internal/models"
)

// QueryRequest is the request body for POST /api/query.
type QueryRequest struct {
	SQL string `json:"sql" example:"SELECT path FROM files" validate:"required"`
}

// InspectResponse wraps a schema summary. Schema is pre-marshaled so the
// first-seen field order survives JSON encoding.
type InspectResponse struct {
	FileCount int              `json:"file_count"`
	Schema    json.RawMessage  `json:"schema"`
	Warnings  []models.Warning `json:"warnings,omitempty"`
}

// QueryResponse wraps query results.
type QueryResponse struct {
	Results  []map[string]any `json:"results"`
	RowCount int              `json:"row_count"`
	Columns  []string         `json:"columns"`
	Warnings []models.Warning `json:"warnings,omitempty"`
}
