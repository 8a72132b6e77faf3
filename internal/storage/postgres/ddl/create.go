// Package ddl provides Postgres-specific rendering of CREATE TABLE
// statements from the generic ddl.TableDef model. The shape mirrors the
// SQLite renderer; the dialects only differ in quoting habits here because
// the generated schema sticks to INTEGER/REAL/TEXT and plain constraint
// clauses both engines accept.
package ddl

import (
	"fmt"
	"strings"

	gddl "erpload/internal/ddl"
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for the
// given table definition. Identifiers are double-quoted; the statement uses
// IF NOT EXISTS so repeated runs are safe.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols, err := gddl.RenderColumns(t, pgIdent)
	if err != nil {
		return "", fmt.Errorf("postgres ddl: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		pgIdent(name),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
