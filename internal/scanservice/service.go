// Package scanservice coordinates file discovery, frontmatter parsing,
// schema inference, and query execution. All state is per-call: nothing is
// cached between invocations, so results always reflect the files on disk.
package scanservice

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/canon"
	"github.com/starford/ansuz/internal/engine"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/schema"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/table"
)

// Service exposes the two core operations over a base directory.
type Service struct {
	store      storage.Provider
	maxSamples int
}

// New creates a scan service. maxSamples bounds sample_values per column;
// zero selects the default.
func New(store storage.Provider, maxSamples int) *Service {
	return &Service{store: store, maxSamples: maxSamples}
}

// Inspect infers the frontmatter schema across all files matching pattern.
// Per-file read failures are absorbed into warnings; they never abort the
// call. A pattern matching nothing yields an empty schema, not an error.
func (s *Service) Inspect(ctx context.Context, pattern string) (*models.SchemaSummary, []models.Warning, error) {
	metas, err := s.store.Glob(pattern)
	if err != nil {
		return nil, nil, err
	}
	records, warnings, err := s.scan(ctx, metas)
	if err != nil {
		return nil, nil, err
	}
	return schema.Infer(records, s.maxSamples), warnings, nil
}

// Query materializes every file under the base directory as a row of the
// "files" table and executes sql against it. Unlike Inspect, Query is
// never glob-scoped: the table always covers the whole base directory.
func (s *Service) Query(ctx context.Context, sql string) (*engine.Result, []models.Warning, error) {
	metas, err := s.store.List()
	if err != nil {
		return nil, nil, err
	}
	records, warnings, err := s.scan(ctx, metas)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]models.FileRecord, len(records))
	for i, raw := range records {
		rows[i] = canon.Record(raw)
	}
	result, err := engine.Run(ctx, table.Build(rows), sql)
	if err != nil {
		return nil, warnings, err
	}
	return result, warnings, nil
}

// scan reads and parses every listed file in parallel, then merges results
// back in the original discovery order so schema field order and sample
// selection stay deterministic. Unreadable files leave a warning and no
// record; unparseable frontmatter degrades inside the parser instead.
func (s *Service) scan(ctx context.Context, metas []storage.FileMeta) ([]models.RawRecord, []models.Warning, error) {
	type slot struct {
		record models.RawRecord
		warn   *models.Warning
	}
	slots := make([]slot, len(metas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, meta := range metas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := s.store.Read(meta.Path)
			if err != nil {
				slots[i].warn = &models.Warning{Path: meta.Path, Error: err.Error()}
				return nil
			}
			res := parser.Parse(data)
			if res.Degraded {
				slog.Debug("frontmatter degraded to strings", slog.String("path", meta.Path))
			}
			slots[i].record = models.RawRecord{
				Path:     meta.Path,
				Fields:   res.Fields,
				Degraded: res.Degraded,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	records := make([]models.RawRecord, 0, len(metas))
	var warnings []models.Warning
	for _, sl := range slots {
		if sl.warn != nil {
			warnings = append(warnings, *sl.warn)
			continue
		}
		records = append(records, sl.record)
	}
	return records, warnings, nil
}
