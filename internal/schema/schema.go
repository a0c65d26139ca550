// Package schema merges per-file frontmatter field maps into a single
// column catalog with occurrence counts, nullability, and bounded samples.
package schema

import (
	"github.com/starford/ansuz/internal/canon"
	"github.com/starford/ansuz/internal/models"
)

// DefaultMaxSamples bounds sample_values when no explicit limit is set.
const DefaultMaxSamples = 5

type column struct {
	summary *models.ColumnSummary
	seen    map[string]struct{}
	typed   bool
}

// Infer builds a SchemaSummary from raw records. Records must arrive in
// deterministic (glob-match) order: column order is first-seen across
// files, a column's reported type is the tag of its first non-null value,
// and samples are the first maxSamples distinct non-null values.
func Infer(records []models.RawRecord, maxSamples int) *models.SchemaSummary {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	out := &models.SchemaSummary{
		FileCount: len(records),
		Columns:   make(map[string]*models.ColumnSummary),
	}
	cols := make(map[string]*column)

	for _, rec := range records {
		for _, name := range rec.Fields.Keys() {
			col, ok := cols[name]
			if !ok {
				col = &column{
					summary: &models.ColumnSummary{
						Type:         models.TypeNull,
						SampleValues: []any{},
					},
					seen: make(map[string]struct{}),
				}
				cols[name] = col
				out.Columns[name] = col.summary
				out.Order = append(out.Order, name)
			}

			value, _ := rec.Fields.Get(name)
			if value == nil {
				continue
			}
			col.summary.Count++

			cv := canon.Canonicalize(value)
			if !col.typed {
				col.summary.Type = cv.Type
				col.typed = true
			}
			if len(col.summary.SampleValues) < maxSamples {
				// Structural equality via the canonical encoding, with
				// the tag so that e.g. the number 1 and the string "1"
				// stay distinct.
				key := string(cv.Type) + "\x00" + cv.Text
				if _, dup := col.seen[key]; !dup {
					col.seen[key] = struct{}{}
					col.summary.SampleValues = append(col.summary.SampleValues, value)
				}
			}
		}
	}

	for _, name := range out.Order {
		s := out.Columns[name]
		s.Nullable = s.Count < out.FileCount
	}
	return out
}
