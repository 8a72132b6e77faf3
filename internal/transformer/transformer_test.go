package transformer

import (
	"testing"

	"erpload/internal/schema"
	"erpload/pkg/records"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := []records.Record{{
		"NOMEFAN": "  Ind. Com.  ",
		"CIDADE":  "SÃOÂ\u00a0PAULO",
		"CODIGO":  int64(5), // non-strings pass through untouched
	}}

	out := Normalize{}.Apply(in)

	if got := out[0]["NOMEFAN"]; got != "Ind. Com." {
		t.Fatalf("NOMEFAN = %q", got)
	}
	if got := out[0]["CIDADE"]; got != "SÃO PAULO" {
		t.Fatalf("CIDADE = %q", got)
	}
	if got := out[0]["CODIGO"]; got != int64(5) {
		t.Fatalf("CODIGO = %v", got)
	}
}

func TestCoerce_Repres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   records.Record
		want records.Record
	}{
		{
			name: "clean row",
			in: records.Record{
				"CODREPRES":    "7",
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": "3.5",
			},
			want: records.Record{
				"CODREPRES":    int64(7),
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": 3.5,
			},
		},
		{
			name: "empty substitute fields take defaults",
			in: records.Record{
				"CODREPRES":    "7",
				"TIPOPESS":     "F",
				"NOMEFAN":      "",
				"COMISSAOBASE": "",
			},
			want: records.Record{
				"CODREPRES":    int64(7),
				"TIPOPESS":     "F",
				"NOMEFAN":      "Não Informado",
				"COMISSAOBASE": float64(3),
			},
		},
		{
			name: "uncoercible substitute field takes default",
			in: records.Record{
				"CODREPRES":    "7",
				"TIPOPESS":     "J",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": "n/a",
			},
			want: records.Record{
				"CODREPRES":    int64(7),
				"TIPOPESS":     "J",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": float64(3),
			},
		},
		{
			name: "empty primary key becomes nil",
			in: records.Record{
				"CODREPRES":    "",
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": "3",
			},
			want: records.Record{
				"CODREPRES":    nil,
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": float64(3),
			},
		},
		{
			name: "out-of-domain reject-policy value kept for the validator",
			in: records.Record{
				"CODREPRES":    "7",
				"TIPOPESS":     "X",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": "3",
			},
			want: records.Record{
				"CODREPRES":    int64(7),
				"TIPOPESS":     "X",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": float64(3),
			},
		},
		{
			name: "out-of-domain substitute value replaced",
			in: records.Record{
				"CODREPRES":    "7",
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": "-5",
			},
			want: records.Record{
				"CODREPRES":    int64(7),
				"TIPOPESS":     "F",
				"NOMEFAN":      "Nome",
				"COMISSAOBASE": float64(3),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := Coerce{Entity: schema.Repres()}.Apply([]records.Record{tt.in})
			got := out[0]
			for k, want := range tt.want {
				if got[k] != want {
					t.Fatalf("%s = %#v, want %#v", k, got[k], want)
				}
			}
		})
	}
}

func TestCoerce_FornClienKeysAndDomains(t *testing.T) {
	t.Parallel()

	in := records.Record{
		"CODCLIFOR":    "553,465",
		"TIPOCF":       "1",
		"CODREPRES":    "bogus", // FK that cannot be coerced
		"NOMEFAN":      "Cliente",
		"CIDADE":       "",
		"UF":           "",
		"CODMUNICIPIO": "3550308",
		"TIPOPESSOA":   "9", // out of enum, substitute policy
		"COBRBANC":     "0",
		"PRAZOPGTO":    "30",
	}

	out := Coerce{Entity: schema.FornClien()}.Apply([]records.Record{in})
	got := out[0]

	if got["CODCLIFOR"] != int64(553465) {
		t.Fatalf("CODCLIFOR = %#v", got["CODCLIFOR"])
	}
	// Keys are never defaulted; an unusable FK stays nil.
	if got["CODREPRES"] != nil {
		t.Fatalf("CODREPRES = %#v, want nil", got["CODREPRES"])
	}
	if got["CIDADE"] != "Não Informado" {
		t.Fatalf("CIDADE = %#v", got["CIDADE"])
	}
	// Empty reject-policy field still takes its declared default.
	if got["UF"] != "ND" {
		t.Fatalf("UF = %#v, want ND", got["UF"])
	}
	if got["TIPOPESSOA"] != int64(1) {
		t.Fatalf("TIPOPESSOA = %#v, want default 1", got["TIPOPESSOA"])
	}
}

func TestCoerce_PedidosDate(t *testing.T) {
	t.Parallel()

	in := records.Record{
		"NUMPED":      "100",
		"DATAPPED":    "25/12/2023",
		"HORAPPED":    "08:30:00",
		"CODCLIEN":    "1",
		"ES":          "",
		"FINALIDNFE":  "",
		"SITUACAO":    "2",
		"PESO":        "",
		"PRAZOPGTO":   "",
		"VALORPRODS":  "1,234.50",
		"VALORDESC":   "",
		"VALOR":       "",
		"VALBASEICMS": "",
		"VALICMS":     "",
		"COMISSAO":    "",
	}

	out := Coerce{Entity: schema.Pedidos()}.Apply([]records.Record{in})
	got := out[0]

	if got["DATAPPED"] != "2023-12-25" {
		t.Fatalf("DATAPPED = %#v, want ISO form", got["DATAPPED"])
	}
	if got["ES"] != "S" {
		t.Fatalf("ES = %#v, want default S", got["ES"])
	}
	if got["VALORPRODS"] != 1234.5 {
		t.Fatalf("VALORPRODS = %#v", got["VALORPRODS"])
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	t.Parallel()

	in := []records.Record{{
		"CODREPRES":    " 7 ",
		"TIPOPESS":     "  F ",
		"NOMEFAN":      "  Nome  ",
		"COMISSAOBASE": " 3 ",
	}}

	out := Chain{
		Normalize{},
		Coerce{Entity: schema.Repres()},
	}.Apply(in)

	got := out[0]
	if got["CODREPRES"] != int64(7) {
		t.Fatalf("CODREPRES = %#v", got["CODREPRES"])
	}
	if got["TIPOPESS"] != "F" {
		t.Fatalf("TIPOPESS = %#v", got["TIPOPESS"])
	}
	if got["NOMEFAN"] != "Nome" {
		t.Fatalf("NOMEFAN = %#v", got["NOMEFAN"])
	}
}
