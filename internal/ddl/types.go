package ddl

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type (e.g., TEXT, INTEGER, REAL)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression (e.g., 0, 'UN', CURRENT_TIMESTAMP)
//   - Check: raw CHECK predicate for this column (e.g., LENGTH(UF) = 2)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
	Check      string
}

// ForeignKeyDef declares that Column references RefColumn of RefTable.
type ForeignKeyDef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableDef holds the table name and an ordered list of columns, plus the
// table-level foreign key constraints. The primary key is derived from the
// columns whose PrimaryKey flag is set; a single flagged column yields a
// simple key, several yield a composite key in column order.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	ForeignKeys []ForeignKeyDef
}

// PrimaryKey returns the names of the primary key columns in definition order.
func (t TableDef) PrimaryKey() []string {
	var pks []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, c.Name)
		}
	}
	return pks
}

// ColumnNames returns all column names in definition order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
