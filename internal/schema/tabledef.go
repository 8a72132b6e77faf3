package schema

import (
	"fmt"
	"strconv"
	"strings"

	"erpload/internal/ddl"
)

// TableDef translates an entity spec into the backend-agnostic DDL model.
// The destination tables enforce the same domains the validator checks in
// memory: the validator exists so bad rows are dropped with a recorded
// reason, the constraints exist so nothing that slips past it can persist.
func TableDef(e Entity) ddl.TableDef {
	td := ddl.TableDef{Name: e.Name}

	for _, f := range e.Fields {
		col := ddl.ColumnDef{
			Name:       f.Name,
			SQLType:    sqlType(f.Kind),
			PrimaryKey: f.PrimaryKey,
			Default:    defaultLiteral(f.Default),
			Check:      checkExpr(f),
		}
		td.Columns = append(td.Columns, col)

		if f.References != "" {
			td.ForeignKeys = append(td.ForeignKeys, ddl.ForeignKeyDef{
				Column:    f.Name,
				RefTable:  f.References,
				RefColumn: refColumn(f.References),
			})
		}
	}
	return td
}

// TableDefs returns the DDL model for all entities in load order.
func TableDefs() []ddl.TableDef {
	ents := Entities()
	out := make([]ddl.TableDef, len(ents))
	for i, e := range ents {
		out[i] = TableDef(e)
	}
	return out
}

func sqlType(k Kind) string {
	switch k {
	case KindInt:
		return "INTEGER"
	case KindReal:
		return "REAL"
	default:
		// Dates are stored as ISO text; SQLite has no native date type and
		// the postgres renderer keeps TEXT for parity with the source data.
		return "TEXT"
	}
}

// defaultLiteral renders a typed default as a SQL literal. Nil (primary key
// components) renders empty, which omits the DEFAULT clause.
func defaultLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		if t == "" {
			return ""
		}
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	default:
		return fmt.Sprint(t)
	}
}

// checkExpr builds the CHECK predicate for a field, mirroring the in-memory
// domain rules. Returns "" when the field is unrestricted.
func checkExpr(f FieldSpec) string {
	var parts []string

	if len(f.EnumInt) > 0 {
		vals := make([]string, len(f.EnumInt))
		for i, n := range f.EnumInt {
			vals[i] = strconv.FormatInt(n, 10)
		}
		parts = append(parts, fmt.Sprintf("%s IN (%s)", f.Name, strings.Join(vals, ", ")))
	}
	if len(f.EnumText) > 0 {
		vals := make([]string, len(f.EnumText))
		for i, s := range f.EnumText {
			vals[i] = "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
		parts = append(parts, fmt.Sprintf("%s IN (%s)", f.Name, strings.Join(vals, ", ")))
	}
	if f.ExactLen > 0 {
		parts = append(parts, fmt.Sprintf("LENGTH(%s) = %d", f.Name, f.ExactLen))
	}
	if f.MaxLen > 0 {
		parts = append(parts, fmt.Sprintf("LENGTH(%s) <= %d", f.Name, f.MaxLen))
	}
	if f.NonNegative {
		parts = append(parts, fmt.Sprintf("%s >= 0", f.Name))
	}

	return strings.Join(parts, " AND ")
}

// refColumn resolves the primary key column of a referenced entity. Every
// FK target in this model has a simple key.
func refColumn(entity string) string {
	for _, e := range Entities() {
		if e.Name == entity {
			if pk := e.PrimaryKey(); len(pk) == 1 {
				return pk[0]
			}
		}
	}
	return ""
}
