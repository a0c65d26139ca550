package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/scanservice"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir, store := testutil.TestBase(t)
	srv := New(scanservice.New(store, 0))
	return srv, dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler functions
	// are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "inspect_frontmatter":
		result, err = srv.inspectFrontmatter(ctx, req)
	case "query_frontmatter":
		result, err = srv.queryFrontmatter(ctx, req)
	case "get_sql_dialect":
		result, err = srv.getSQLDialect(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestInspectFrontmatter(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteFile(t, dir, "a.md", "---\ndate: 2025-11-01\n---\n")
	testutil.WriteFile(t, dir, "b.md", "---\ndate: 2025-11-02\ntags: [ai]\n---\n")

	r := callTool(t, srv, "inspect_frontmatter", map[string]interface{}{
		"glob": "**/*.md",
	})
	if r.IsError {
		t.Fatalf("inspect error: %s", resultText(r))
	}

	var resp struct {
		FileCount int                        `json:"file_count"`
		Schema    map[string]json.RawMessage `json:"schema"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, resultText(r))
	}
	if resp.FileCount != 2 {
		t.Errorf("file_count = %d, want 2", resp.FileCount)
	}
	if _, ok := resp.Schema["tags"]; !ok {
		t.Errorf("schema missing tags: %s", resultText(r))
	}
}

func TestInspectFrontmatter_MissingGlob(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "inspect_frontmatter", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing glob argument")
	}
}

func TestInspectFrontmatter_InvalidPattern(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "inspect_frontmatter", map[string]interface{}{
		"glob": "[",
	})
	if !r.IsError {
		t.Error("expected error for invalid pattern")
	}
}

func TestQueryFrontmatter(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteFile(t, dir, "a.md", "---\nstatus: done\nprio: 3\n---\n")
	testutil.WriteFile(t, dir, "b.md", "---\nstatus: open\nprio: 1\n---\n")

	r := callTool(t, srv, "query_frontmatter", map[string]interface{}{
		"sql": "SELECT path, prio FROM files WHERE status = 'open'",
	})
	if r.IsError {
		t.Fatalf("query error: %s", resultText(r))
	}

	var resp struct {
		Results  []map[string]any `json:"results"`
		RowCount int              `json:"row_count"`
		Columns  []string         `json:"columns"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, resultText(r))
	}
	if resp.RowCount != 1 {
		t.Fatalf("row_count = %d, want 1", resp.RowCount)
	}
	if resp.Results[0]["path"] != "b.md" || resp.Results[0]["prio"] != "1" {
		t.Errorf("results = %v", resp.Results)
	}
	if len(resp.Columns) != 2 {
		t.Errorf("columns = %v", resp.Columns)
	}
}

func TestQueryFrontmatter_BadSQL(t *testing.T) {
	srv, dir := testServer(t)
	testutil.WriteFile(t, dir, "a.md", "---\ntitle: A\n---\n")

	r := callTool(t, srv, "query_frontmatter", map[string]interface{}{
		"sql": "SELECT FROM WHERE",
	})
	if !r.IsError {
		t.Error("expected error for invalid SQL")
	}
}

func TestGetSQLDialect(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_sql_dialect", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("dialect error: %s", resultText(r))
	}
	text := resultText(r)
	for _, want := range []string{"files", "json_each", "TEXT"} {
		if !strings.Contains(text, want) {
			t.Errorf("dialect reference missing %q", want)
		}
	}
}

func TestReadSQLDialectResource(t *testing.T) {
	srv, _ := testServer(t)

	contents, err := srv.readSQLDialectResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T", contents[0])
	}
	if tc.URI != "ansuz://sql-dialect" || tc.MIMEType != "text/markdown" {
		t.Errorf("uri = %s, mime = %s", tc.URI, tc.MIMEType)
	}
	if !strings.Contains(tc.Text, "files") {
		t.Error("resource text missing table reference")
	}
}
