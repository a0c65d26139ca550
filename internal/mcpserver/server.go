// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz frontmatter tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/scanservice"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp *server.MCPServer
	svc *scanservice.Service
}

// New creates a new MCP server with all Ansuz tools registered.
func New(svc *scanservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("inspect_frontmatter",
		mcp.WithDescription("Infer the frontmatter schema (field types, counts, nullability, "+
			"sample values) across files matching a glob pattern."),
		mcp.WithString("glob", mcp.Required(), mcp.Description("Glob pattern relative to the base directory (e.g. **/*.md)")),
	), s.inspectFrontmatter)

	s.mcp.AddTool(mcp.NewTool("query_frontmatter",
		mcp.WithDescription("Execute SQL against the 'files' table built from the frontmatter of "+
			"every file under the base directory. Every column is TEXT; arrays and objects are "+
			"JSON text. Read the dialect first via the get_sql_dialect tool or the "+
			"ansuz://sql-dialect resource."),
		mcp.WithString("sql", mcp.Required(), mcp.Description("SQL query referencing the 'files' table")),
	), s.queryFrontmatter)

	s.mcp.AddTool(mcp.NewTool("get_sql_dialect",
		mcp.WithDescription("Returns the files table layout and the SQL dialect reference. "+
			"Call this before writing queries."),
	), s.getSQLDialect)

	// Resource: SQL dialect reference.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://sql-dialect", "SQL Dialect Reference",
			mcp.WithResourceDescription("The files table layout and the SQL dialect available to queries."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSQLDialectResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) inspectFrontmatter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("glob")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary, warnings, err := s.svc.Inspect(ctx, pattern)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// SchemaSummary marshals the whole {file_count, schema} object itself,
	// so warnings are spliced in by hand when present.
	out, merr := summary.MarshalJSON()
	if merr != nil {
		return mcp.NewToolResultError(merr.Error()), nil
	}
	if len(warnings) > 0 {
		wb, werr := json.Marshal(warnings)
		if werr != nil {
			return mcp.NewToolResultError(werr.Error()), nil
		}
		out = append(out[:len(out)-1], []byte(`,"warnings":`)...)
		out = append(out, wb...)
		out = append(out, '}')
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) queryFrontmatter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("sql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, warnings, err := s.svc.Query(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := map[string]any{
		"results":   result.Rows,
		"row_count": result.RowCount(),
		"columns":   result.Columns,
	}
	if len(warnings) > 0 {
		payload["warnings"] = warnings
	}
	out, merr := json.MarshalIndent(payload, "", "  ")
	if merr != nil {
		return mcp.NewToolResultError(merr.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getSQLDialect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SQLDialectReference), nil
}

func (s *Server) readSQLDialectResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://sql-dialect",
			MIMEType: "text/markdown",
			Text:     SQLDialectReference,
		},
	}, nil
}
