// Package ddl provides SQLite-specific rendering of CREATE TABLE statements
// from the generic ddl.TableDef model.
//
// The renderer here:
//   - Uses simple double-quoted identifiers: "table", "col".
//   - Emits CREATE TABLE IF NOT EXISTS.
//   - Treats ColumnDef.Default and ColumnDef.Check as raw SQL.
//   - Renders PRIMARY KEY and FOREIGN KEY as separate table constraints.
package ddl

import (
	"fmt"
	"strings"

	gddl "erpload/internal/ddl"
)

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for the given
// table definition. The statement has the form:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "col1" TYPE NOT NULL [DEFAULT expr] [CHECK (pred)],
//	  ...,
//	  PRIMARY KEY ("pk1", "pk2"),
//	  FOREIGN KEY ("fk") REFERENCES "other"("pk")
//	);
//
// The output is deterministic: the same TableDef always renders to identical
// text, so callers can re-run schema creation safely.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: at least one column is required")
	}

	cols, err := gddl.RenderColumns(t, quoteIdent)
	if err != nil {
		return "", fmt.Errorf("sqlite ddl: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteIdent(name),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
