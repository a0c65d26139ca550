// Package engine executes caller-supplied SQL against a virtual table
// loaded into an in-memory SQLite database. The engine neither generates
// nor validates SQL; dialect errors surface verbatim.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// TableName is the relation callers query against.
const TableName = "files"

// Result holds the rows returned by a query.
type Result struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"results"`
}

// RowCount returns the number of result rows.
func (r *Result) RowCount() int { return len(r.Rows) }

// Run loads tbl into a fresh in-memory database as the "files" table and
// executes query against it. Every table cell is TEXT or NULL. The
// database lives only for the duration of the call.
func Run(ctx context.Context, tbl *models.VirtualTable, query string) (*Result, error) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("engine: open: %w", err)
	}
	defer conn.Close()

	if err := loadTable(ctx, conn, tbl); err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("engine: %w: %v", apperr.ErrQueryFailed, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("engine: columns: %w", err)
	}

	out := &Result{Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("engine: scan: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = normalize(cells[i])
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("engine: %w: %v", apperr.ErrQueryFailed, err)
	}
	return out, nil
}

// loadTable creates the files table (all columns TEXT) and bulk-inserts
// every row inside one transaction.
func loadTable(ctx context.Context, conn *sql.DB, tbl *models.VirtualTable) error {
	defs := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(defs, ", "))
	if _, err := conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("engine: create table: %w", err)
	}
	if len(tbl.Rows) == 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("engine: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	quoted := make([]string, len(tbl.Columns))
	marks := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		quoted[i] = quoteIdent(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		TableName, strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("engine: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(tbl.Columns))
	for _, row := range tbl.Rows {
		for i, c := range tbl.Columns {
			args[i] = row[c]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("engine: insert row: %w", err)
		}
	}
	return tx.Commit()
}

// quoteIdent double-quotes an identifier; field names come straight from
// user frontmatter and may contain anything.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// normalize converts driver values for JSON responses: byte slices become
// strings, everything else passes through.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
