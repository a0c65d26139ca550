package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/scanservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *scanservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *scanservice.Service) *Handler {
	return &Handler{svc: svc}
}

// InspectSchema handles GET /api/schema.
//
//	@Summary		Infer the frontmatter schema for files matching a glob
//	@Tags			schema
//	@Produce		json
//	@Param			glob	query		string	true	"Glob pattern relative to the base directory"
//	@Success		200		{object}	InspectResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/schema [get]
func (h *Handler) InspectSchema(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("glob")
	if pattern == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'glob' is required"))
		return
	}

	summary, warnings, err := h.svc.Inspect(r.Context(), pattern)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidPattern) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("inspect failed", slog.String("glob", pattern), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	schemaJSON, err := summary.MarshalSchemaJSON()
	if err != nil {
		slog.Error("schema encode failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, InspectResponse{
		FileCount: summary.FileCount,
		Schema:    schemaJSON,
		Warnings:  warnings,
	})
}

// RunQuery handles POST /api/query.
//
//	@Summary		Execute SQL against the files table
//	@Tags			query
//	@Accept			json
//	@Produce		json
//	@Param			body	body		QueryRequest	true	"SQL to execute"
//	@Success		200		{object}	QueryResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/query [post]
func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.SQL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("sql is required"))
		return
	}

	result, warnings, err := h.svc.Query(r.Context(), req.SQL)
	if err != nil {
		if errors.Is(err, apperr.ErrQueryFailed) {
			// Engine errors go back verbatim; the caller wrote the SQL.
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("query failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{
		Results:  result.Rows,
		RowCount: result.RowCount(),
		Columns:  result.Columns,
		Warnings: warnings,
	})
}
