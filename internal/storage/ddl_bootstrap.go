package storage

import (
	"context"
	"fmt"
	"sync"

	"erpload/internal/ddl"
)

// DDLRenderer renders one table definition into the dialect of a storage
// kind. Backends register their renderer at init time next to their Opener.
type DDLRenderer func(t ddl.TableDef) (string, error)

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLRenderer{}
)

// RegisterDDL registers (or replaces) a DDLRenderer for the given storage
// kind.
func RegisterDDL(kind string, fn DDLRenderer) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// RenderDDL renders a table definition for a storage kind.
func RenderDDL(kind string, t ddl.TableDef) (string, error) {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("storage: no DDL renderer registered for kind=%q", kind)
	}
	return fn(t)
}

// EnsureTables renders and executes the DDL for each table definition in
// order. Definitions must already be sorted so that referenced tables come
// before their dependents; callers pass schema.TableDefs(), which is.
func EnsureTables(ctx context.Context, kind string, repo Repository, defs []ddl.TableDef) error {
	for _, td := range defs {
		stmt, err := RenderDDL(kind, td)
		if err != nil {
			return fmt.Errorf("render ddl for %s: %w", td.Name, err)
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", td.Name, err)
		}
	}
	return nil
}
