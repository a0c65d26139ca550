package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/starford/ansuz/internal/apperr"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the base directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute base directory path.
func (f *FS) Root() string { return f.root }

// safePath resolves a relative path against the base directory and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes base directory: %s", rel)
	}
	return abs, nil
}

// Glob walks the base directory and returns metadata for every file whose
// slash-relative path matches pattern. Hidden files and directories (dot
// prefix) are skipped. Results arrive in lexical walk order, which keeps
// schema inference deterministic across calls.
func (f *FS) Glob(pattern string) ([]FileMeta, error) {
	matchers, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("storage: %w: %q: %v", apperr.ErrInvalidPattern, pattern, err)
	}
	return f.walk(func(rel string) bool {
		for _, m := range matchers {
			if m.Match(rel) {
				return true
			}
		}
		return false
	})
}

// List returns metadata for every non-hidden file under the base directory.
func (f *FS) List() ([]FileMeta, error) {
	return f.walk(func(string) bool { return true })
}

func (f *FS) walk(match func(rel string) bool) ([]FileMeta, error) {
	var out []FileMeta
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees degrade to absence rather than
			// aborting the whole discovery pass.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && p != f.root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(f.root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !match(rel) {
			return nil
		}
		meta := FileMeta{Path: rel}
		if info, infoErr := d.Info(); infoErr == nil {
			meta.UpdatedAt = info.ModTime()
		}
		out = append(out, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: walk: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of a file under the base directory.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", path, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// compilePattern compiles pattern with '/' as the separator so that '*'
// stays within one path segment and '**' crosses segments. A leading
// "**/" also matches files at the root itself (zero directories), matching
// the recursive-glob convention callers expect from "**/*.md".
func compilePattern(pattern string) ([]glob.Glob, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	matchers := []glob.Glob{g}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		top, err := glob.Compile(rest, '/')
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, top)
	}
	return matchers, nil
}
