// Package storage contains storage-agnostic contracts plus the factory that
// backends register themselves with. Callers select a backend by kind
// ("sqlite", "postgres") without importing it; importing internal/storage/all
// for side effects makes every built-in backend available.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the narrow surface the pipeline needs from a destination
// store: run DDL, insert one entity's batch atomically, close.
type Repository interface {
	// Exec executes an arbitrary SQL statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// InsertBatch inserts rows (aligned to columns order) into table inside
	// a single transaction. Implementations roll the whole batch back on the
	// first failed row and return the number of rows inserted before the
	// failure was detected.
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind selects the backend implementation: "sqlite" or "postgres".
	Kind string

	// DSN is passed to the backend driver, e.g. "file:erp.db?_fk=1" for
	// sqlite or "postgresql://..." for postgres.
	DSN string
}

// Opener constructs a Repository from a Config.
type Opener func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu      sync.RWMutex
	openers = map[string]Opener{}
)

// Register installs (or replaces) the Opener for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Opener) {
	mu.Lock()
	defer mu.Unlock()
	openers[kind] = fn
}

// New opens a Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := openers[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return fn(ctx, cfg)
}

// Kinds lists the registered storage kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(openers))
	for k := range openers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
