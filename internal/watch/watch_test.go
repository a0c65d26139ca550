package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/storage"
)

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) callback(kind, path, sum string) {
	l.mu.Lock()
	l.events = append(l.events, kind+":"+path)
	l.mu.Unlock()
}

func (l *eventLog) has(event string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e == event {
			return true
		}
	}
	return false
}

func watchTestEnv(t *testing.T) (string, storage.Provider, *eventLog) {
	t.Helper()
	baseDir := t.TempDir()
	store, err := storage.NewFS(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	return baseDir, store, &eventLog{}
}

func startWatch(t *testing.T, store storage.Provider, baseDir string, log *eventLog) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go Watch(ctx, store, baseDir, logger, log.callback)
	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatch_NewFileReported(t *testing.T) {
	baseDir, store, log := watchTestEnv(t)
	startWatch(t, store, baseDir, log)

	_ = os.WriteFile(filepath.Join(baseDir, "new.md"), []byte("---\ntitle: New\n---\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:new.md")
	}, "expected created:new.md callback")
}

func TestWatch_WriteReported(t *testing.T) {
	baseDir, store, log := watchTestEnv(t)
	_ = os.WriteFile(filepath.Join(baseDir, "a.md"), []byte("one"), 0o644)
	startWatch(t, store, baseDir, log)

	_ = os.WriteFile(filepath.Join(baseDir, "a.md"), []byte("two"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("updated:a.md") || log.has("created:a.md")
	}, "expected change callback for a.md")
}

func TestWatch_NewDirWatched(t *testing.T) {
	baseDir, store, log := watchTestEnv(t)
	startWatch(t, store, baseDir, log)

	subDir := filepath.Join(baseDir, "subdir")
	_ = os.MkdirAll(subDir, 0o755)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "deep.md"), []byte("# Deep"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:subdir/deep.md")
	}, "file in new subdir not reported")
}

func TestWatch_DeleteReported(t *testing.T) {
	baseDir, store, log := watchTestEnv(t)
	_ = os.WriteFile(filepath.Join(baseDir, "del.md"), []byte("# Delete Me"), 0o644)
	startWatch(t, store, baseDir, log)

	_ = os.Remove(filepath.Join(baseDir, "del.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("deleted:del.md")
	}, "expected deleted:del.md callback")
}

func TestWatch_HiddenFileIgnored(t *testing.T) {
	baseDir, store, log := watchTestEnv(t)
	startWatch(t, store, baseDir, log)

	_ = os.WriteFile(filepath.Join(baseDir, ".hidden.md"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(baseDir, "seen.md"), []byte("y"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:seen.md")
	}, "expected created:seen.md callback")

	if log.has("created:.hidden.md") {
		t.Error("hidden file should not be reported")
	}
}
