// Package table assembles canonicalized file records into the in-memory
// row set handed to the query engine.
package table

import (
	"github.com/starford/ansuz/internal/models"
)

// PathColumn is the reserved first column carrying the file path relative
// to the base directory.
const PathColumn = "path"

// Build produces a VirtualTable from file records. Columns are "path"
// followed by the union of all field names in first-seen order; every row
// carries every column, with nil for fields absent or null in that file.
func Build(records []models.FileRecord) *models.VirtualTable {
	columns := []string{PathColumn}
	known := map[string]struct{}{PathColumn: {}}
	for _, rec := range records {
		for _, name := range rec.Order {
			if _, ok := known[name]; ok {
				continue
			}
			known[name] = struct{}{}
			columns = append(columns, name)
		}
	}

	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(columns))
		row[PathColumn] = rec.Path
		for _, name := range columns[1:] {
			cv, ok := rec.Fields[name]
			if !ok || cv.IsNull() {
				row[name] = nil
				continue
			}
			row[name] = cv.Text
		}
		rows = append(rows, row)
	}

	return &models.VirtualTable{Columns: columns, Rows: rows}
}
