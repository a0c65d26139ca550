package table

import (
	"reflect"
	"testing"

	"github.com/starford/ansuz/internal/canon"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
)

func record(t *testing.T, path, content string) models.FileRecord {
	t.Helper()
	res := parser.Parse([]byte(content))
	return canon.Record(models.RawRecord{Path: path, Fields: res.Fields})
}

func TestBuild_PathFirstUnionOrder(t *testing.T) {
	tbl := Build([]models.FileRecord{
		record(t, "a.md", "---\ntitle: A\ndate: 2025-11-01\n---\n"),
		record(t, "b.md", "---\ntags: [x]\ntitle: B\n---\n"),
	})
	want := []string{"path", "title", "date", "tags"}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("columns = %v, want %v", tbl.Columns, want)
	}
}

func TestBuild_EveryRowHasEveryColumn(t *testing.T) {
	tbl := Build([]models.FileRecord{
		record(t, "a.md", "---\ntitle: A\n---\n"),
		record(t, "b.md", "---\ndate: 2025-11-02\n---\n"),
		record(t, "c.md", "no frontmatter\n"),
	})
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	for i, row := range tbl.Rows {
		for _, col := range tbl.Columns {
			if _, ok := row[col]; !ok {
				t.Errorf("row %d missing column %q", i, col)
			}
		}
	}
	if tbl.Rows[0]["date"] != nil {
		t.Errorf("a.md date = %#v, want nil", tbl.Rows[0]["date"])
	}
	if tbl.Rows[1]["date"] != "2025-11-02" {
		t.Errorf("b.md date = %#v", tbl.Rows[1]["date"])
	}
	if tbl.Rows[2]["title"] != nil || tbl.Rows[2]["date"] != nil {
		t.Errorf("frontmatter-less file should be all nulls: %#v", tbl.Rows[2])
	}
}

func TestBuild_NullFieldIsNilCell(t *testing.T) {
	tbl := Build([]models.FileRecord{
		record(t, "a.md", "---\nowner:\n---\n"),
	})
	if tbl.Rows[0]["owner"] != nil {
		t.Errorf("owner = %#v, want nil", tbl.Rows[0]["owner"])
	}
}

func TestBuild_EmptySet(t *testing.T) {
	tbl := Build(nil)
	if !reflect.DeepEqual(tbl.Columns, []string{"path"}) {
		t.Errorf("columns = %v", tbl.Columns)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("rows = %d", len(tbl.Rows))
	}
}
