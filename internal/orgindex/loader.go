package orgindex

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dgallion1/orgcontext/internal/orgchart"
)

// Loader owns the shared index and its lifecycle: one guarded initial
// build, then explicit reloads that swap the index pointer atomically so
// concurrent readers never observe a partially rebuilt index.
type Loader struct {
	path    string
	aliases map[string]string
	log     *slog.Logger

	mu      sync.Mutex // Serializes builds only; reads go through current.
	current atomic.Pointer[Index]
}

// NewLoader creates a loader for the org-chart document at path. No build
// happens until Get or Reload is called.
func NewLoader(path string, aliases map[string]string, log *slog.Logger) *Loader {
	return &Loader{path: path, aliases: aliases, log: log}
}

// Get returns the shared index, building it on first use. Concurrent
// callers during initialization block until the first builder finishes
// and then share the same immutable structure.
func (l *Loader) Get() (*Index, error) {
	if idx := l.current.Load(); idx != nil {
		return idx, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.current.Load(); idx != nil {
		return idx, nil
	}
	return l.buildLocked()
}

// Reload rebuilds the index from the source document and swaps it in.
// On failure the previous index stays in service.
func (l *Loader) Reload() (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buildLocked()
}

func (l *Loader) buildLocked() (*Index, error) {
	root, err := orgchart.ParseFile(l.path)
	if err != nil {
		// Fail closed: never serve an empty or partial index.
		return nil, fmt.Errorf("build org index: %w", err)
	}
	idx := Build(root, l.aliases)
	l.current.Store(idx)
	l.log.Info("org index built", "source", l.path, "units", idx.Len())
	return idx, nil
}
