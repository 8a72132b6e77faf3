// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render CREATE TABLE statements from that model.
//
// The goal of this package is to stay generic: it does not assume any specific
// SQL dialect. In particular, it:
//
//   - Does not quote identifiers; it emits TableDef.Name and ColumnDef.Name as-is.
//   - Does not insert dialect-specific clauses such as IF NOT EXISTS.
//   - Treats ColumnDef.Default and ColumnDef.Check as raw SQL (the caller is
//     responsible for safety and dialect correctness).
//
// Backend-specific packages (e.g., internal/storage/sqlite/ddl) adapt this
// model to their dialect: they may wrap or reimplement BuildCreateTableSQL
// using the same TableDef/ColumnDef types.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a generic CREATE TABLE statement from a TableDef.
//
// Each column is rendered as:
//
//	<Name> <SQLType> [NOT NULL] [DEFAULT <Default>] [CHECK (<Check>)]
//
// Columns with PrimaryKey == true are collected and rendered as a separate
// PRIMARY KEY (<col1>, <col2>, ...) clause, followed by one
// FOREIGN KEY (<col>) REFERENCES <table>(<col>) clause per ForeignKeyDef.
//
// The builder is stateless and deterministic: the same TableDef always yields
// byte-identical SQL.
func BuildCreateTableSQL(t TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	cols, err := RenderColumns(t, func(id string) string { return id })
	if err != nil {
		return "", err
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		name,
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// RenderColumns renders the column definitions plus PRIMARY KEY and
// FOREIGN KEY table constraints, quoting identifiers with quote. It is shared
// by the generic builder above and the dialect renderers.
func RenderColumns(t TableDef, quote func(string) string) ([]string, error) {
	cols := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("ddl: column with empty name in table %s", t.Name)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return nil, fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}

		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			// Default is emitted as raw SQL expression.
			sb.WriteString(def)
		}

		if chk := strings.TrimSpace(c.Check); chk != "" {
			sb.WriteString(" CHECK (")
			sb.WriteString(chk)
			sb.WriteByte(')')
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quote(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		if fk.Column == "" || fk.RefTable == "" || fk.RefColumn == "" {
			return nil, fmt.Errorf("ddl: incomplete foreign key in table %s", t.Name)
		}
		cols = append(cols, fmt.Sprintf(
			"FOREIGN KEY (%s) REFERENCES %s(%s)",
			quote(fk.Column), quote(fk.RefTable), quote(fk.RefColumn),
		))
	}

	return cols, nil
}
