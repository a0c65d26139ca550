package models

// RawRecord is one file's parsed frontmatter before canonicalization.
// Fields is never nil; a file without a frontmatter block carries an empty
// map. Values keep their original decoded form so the schema unifier can
// sample and type them pre-stringification.
type RawRecord struct {
	Path     string
	Fields   *Fields
	Degraded bool // frontmatter failed structured parsing and was salvaged
}

// FileRecord is one file's canonicalized row material.
type FileRecord struct {
	Path   string
	Fields map[string]CanonicalValue
	// Order lists field names in the file's own frontmatter order.
	Order []string
}

// ColumnSummary aggregates one field across a file set.
type ColumnSummary struct {
	Type         TypeTag `json:"type"`
	Count        int     `json:"count"`
	Nullable     bool    `json:"nullable"`
	SampleValues []any   `json:"sample_values"`
}

// SchemaSummary is the result of an inspect call.
type SchemaSummary struct {
	FileCount int `json:"file_count"`
	// Columns holds per-field summaries; Order preserves first-seen field
	// order across the file set for deterministic serialization.
	Columns map[string]*ColumnSummary `json:"-"`
	Order   []string                  `json:"-"`
}

// VirtualTable is the in-memory row set handed to the query engine.
// Columns always starts with "path". Row cells are string or nil.
type VirtualTable struct {
	Columns []string
	Rows    []map[string]any
}

// Warning records a non-fatal per-file failure during a scan.
type Warning struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
