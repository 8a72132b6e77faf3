// Package schema declares the five ERP entities handled by the pipeline:
// field layout of each export file, primary and foreign keys, per-field
// defaults, and the value domains the destination tables also enforce.
//
// The declarations here drive three separate layers: the record normalizer
// (coercion + default policy), the referential integrity validator (keys and
// reject domains), and the DDL builder (CREATE TABLE with PK/FK/CHECK).
package schema

// Kind is the semantic type of a field.
type Kind string

const (
	KindInt  Kind = "integer"
	KindReal Kind = "real"
	KindText Kind = "text"
	KindDate Kind = "date"
)

// Policy selects what happens to a row whose field value fails coercion or
// falls outside the field's domain.
type Policy int

const (
	// Substitute replaces the bad value with the field's Default. This is
	// the normal treatment for numeric and free-text fields.
	Substitute Policy = iota

	// RejectRow drops the whole row with a domain-violation reason. Used for
	// fields where a fabricated value would corrupt meaning (UF, TIPOPESS,
	// TIPOCF, SITUACAO). An empty source value still takes the field's
	// Default when one is declared; rejection applies to values that are
	// present but outside the domain.
	RejectRow
)

// FieldSpec describes one column of an entity's export file.
type FieldSpec struct {
	Name       string
	Kind       Kind
	PrimaryKey bool

	// References names the upstream entity whose primary key this field
	// must resolve to. Empty for non-FK fields.
	References string

	// Default is substituted when coercion fails or a Substitute-policy
	// domain is violated. Typed as int64, float64 or string. Nil only for
	// primary key components, which are never defaulted.
	Default any

	// Domain restrictions. Zero values mean unrestricted.
	MaxLen      int
	ExactLen    int
	EnumInt     []int64
	EnumText    []string
	NonNegative bool

	// Layout is the source date layout for KindDate fields.
	Layout string

	OnViolation Policy
}

// Entity is one of the five ERP tables, with fields in export column order.
type Entity struct {
	Name   string
	Fields []FieldSpec
}

// ForeignKey pairs a referencing column with the upstream entity it points at.
type ForeignKey struct {
	Column string
	Entity string
}

// PrimaryKey returns the PK column names in declaration order.
func (e Entity) PrimaryKey() []string {
	var pks []string
	for _, f := range e.Fields {
		if f.PrimaryKey {
			pks = append(pks, f.Name)
		}
	}
	return pks
}

// ForeignKeys returns the declared FK columns in declaration order.
func (e Entity) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, f := range e.Fields {
		if f.References != "" {
			fks = append(fks, ForeignKey{Column: f.Name, Entity: f.References})
		}
	}
	return fks
}

// Columns returns all column names in declaration order.
func (e Entity) Columns() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Name
	}
	return out
}

// Field looks up a field spec by name.
func (e Entity) Field(name string) (FieldSpec, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Entities returns the five entities in load order. Each entity references
// only entities that come before it, so validating and loading in this order
// guarantees every FK target set is complete when it is consulted.
func Entities() []Entity {
	return []Entity{Repres(), FornClien(), Produtos(), Pedidos(), PedidosItem()}
}

// Repres is the sales representative master.
func Repres() Entity {
	return Entity{
		Name: "Repres",
		Fields: []FieldSpec{
			{Name: "CODREPRES", Kind: KindInt, PrimaryKey: true},
			{Name: "TIPOPESS", Kind: KindText, EnumText: []string{"F", "J"}, OnViolation: RejectRow},
			{Name: "NOMEFAN", Kind: KindText, MaxLen: 20, Default: "Não Informado"},
			{Name: "COMISSAOBASE", Kind: KindReal, Default: float64(3), NonNegative: true},
		},
	}
}

// FornClien is the supplier/customer master.
func FornClien() Entity {
	return Entity{
		Name: "FornClien",
		Fields: []FieldSpec{
			{Name: "CODCLIFOR", Kind: KindInt, PrimaryKey: true},
			{Name: "TIPOCF", Kind: KindInt, EnumInt: []int64{1, 2}, OnViolation: RejectRow},
			{Name: "CODREPRES", Kind: KindInt, References: "Repres"},
			{Name: "NOMEFAN", Kind: KindText, MaxLen: 50, Default: "Não Informado"},
			{Name: "CIDADE", Kind: KindText, MaxLen: 50, Default: "Não Informado"},
			{Name: "UF", Kind: KindText, ExactLen: 2, Default: "ND", OnViolation: RejectRow},
			{Name: "CODMUNICIPIO", Kind: KindInt, Default: int64(0)},
			{Name: "TIPOPESSOA", Kind: KindInt, EnumInt: []int64{1, 2}, Default: int64(1)},
			{Name: "COBRBANC", Kind: KindInt, EnumInt: []int64{-1, 0, 1}, Default: int64(0)},
			{Name: "PRAZOPGTO", Kind: KindInt, Default: int64(0)},
		},
	}
}

// Produtos is the product master.
func Produtos() Entity {
	return Entity{
		Name: "Produtos",
		Fields: []FieldSpec{
			{Name: "CODPROD", Kind: KindInt, PrimaryKey: true},
			{Name: "NOMEPROD", Kind: KindText, MaxLen: 50, Default: "Não Informado"},
			{Name: "CODFORNE", Kind: KindInt, References: "FornClien"},
			{Name: "UNIDADE", Kind: KindInt, Default: int64(0)},
			{Name: "ALIQICMS", Kind: KindReal, Default: float64(0)},
			{Name: "VALCUSTO", Kind: KindReal, Default: float64(0)},
			{Name: "VALVENDA", Kind: KindReal, Default: float64(0)},
			{Name: "QTDEMIN", Kind: KindReal, Default: float64(1)},
			{Name: "QTDEESTQ", Kind: KindReal, Default: float64(0)},
			{Name: "GRUPO", Kind: KindInt, Default: int64(1)},
			{Name: "CLASSEESTQ", Kind: KindText, MaxLen: 1, Default: "A"},
			{Name: "COMISSAO", Kind: KindReal, Default: float64(0)},
			{Name: "PESOBRUTO", Kind: KindReal, Default: float64(0)},
		},
	}
}

// Pedidos is the order header.
func Pedidos() Entity {
	return Entity{
		Name: "Pedidos",
		Fields: []FieldSpec{
			{Name: "NUMPED", Kind: KindInt, PrimaryKey: true},
			{Name: "DATAPPED", Kind: KindDate, Layout: "02/01/2006", Default: ""},
			{Name: "HORAPPED", Kind: KindText, MaxLen: 8, Default: "00:00:00"},
			{Name: "CODCLIEN", Kind: KindInt, References: "FornClien"},
			{Name: "ES", Kind: KindText, EnumText: []string{"S", "E"}, Default: "S"},
			{Name: "FINALIDNFE", Kind: KindInt, EnumInt: []int64{1, 2}, Default: int64(1)},
			{Name: "SITUACAO", Kind: KindInt, EnumInt: []int64{1, 2, 3, 4}, Default: int64(2), OnViolation: RejectRow},
			{Name: "PESO", Kind: KindReal, Default: float64(0)},
			{Name: "PRAZOPGTO", Kind: KindInt, Default: int64(0)},
			{Name: "VALORPRODS", Kind: KindReal, Default: float64(0)},
			{Name: "VALORDESC", Kind: KindReal, Default: float64(0)},
			{Name: "VALOR", Kind: KindReal, Default: float64(0)},
			{Name: "VALBASEICMS", Kind: KindReal, Default: float64(0)},
			{Name: "VALICMS", Kind: KindReal, Default: float64(0)},
			{Name: "COMISSAO", Kind: KindReal, Default: float64(0)},
		},
	}
}

// PedidosItem is the order line. Its key is composite: (NUMPED, NUMITEM).
// NUMPED is simultaneously part of the key and a FK to Pedidos.
func PedidosItem() Entity {
	return Entity{
		Name: "PedidosItem",
		Fields: []FieldSpec{
			{Name: "NUMPED", Kind: KindInt, PrimaryKey: true, References: "Pedidos"},
			{Name: "NUMITEM", Kind: KindInt, PrimaryKey: true},
			{Name: "CODPROD", Kind: KindInt, References: "Produtos"},
			{Name: "QTDE", Kind: KindReal, Default: float64(0)},
			{Name: "VALUNIT", Kind: KindReal, Default: float64(0)},
			{Name: "UNID", Kind: KindText, MaxLen: 2, Default: "UN"},
			{Name: "ALIQICMS", Kind: KindReal, Default: float64(0)},
			{Name: "COMISSAO", Kind: KindReal, Default: float64(0)},
			{Name: "STICMS", Kind: KindInt, Default: int64(0)},
			{Name: "CFOP", Kind: KindInt, Default: int64(5102)},
			{Name: "REDUCBASEICMS", Kind: KindReal, Default: float64(0)},
		},
	}
}
