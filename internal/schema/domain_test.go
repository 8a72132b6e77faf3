package schema

import "testing"

func TestInDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field FieldSpec
		value any
		want  bool
	}{
		{
			name:  "int enum member",
			field: FieldSpec{Name: "TIPOCF", Kind: KindInt, EnumInt: []int64{1, 2}},
			value: int64(2),
			want:  true,
		},
		{
			name:  "int enum non-member",
			field: FieldSpec{Name: "TIPOCF", Kind: KindInt, EnumInt: []int64{1, 2}},
			value: int64(3),
			want:  false,
		},
		{
			name:  "int wrong dynamic type",
			field: FieldSpec{Name: "TIPOCF", Kind: KindInt, EnumInt: []int64{1, 2}},
			value: "1",
			want:  false,
		},
		{
			name:  "nil never in domain",
			field: FieldSpec{Name: "TIPOCF", Kind: KindInt},
			value: nil,
			want:  false,
		},
		{
			name:  "non-negative real rejects negative",
			field: FieldSpec{Name: "COMISSAOBASE", Kind: KindReal, NonNegative: true},
			value: float64(-1),
			want:  false,
		},
		{
			name:  "non-negative real accepts zero",
			field: FieldSpec{Name: "COMISSAOBASE", Kind: KindReal, NonNegative: true},
			value: float64(0),
			want:  true,
		},
		{
			name:  "text enum member",
			field: FieldSpec{Name: "TIPOPESS", Kind: KindText, EnumText: []string{"F", "J"}},
			value: "J",
			want:  true,
		},
		{
			name:  "text enum non-member",
			field: FieldSpec{Name: "TIPOPESS", Kind: KindText, EnumText: []string{"F", "J"}},
			value: "X",
			want:  false,
		},
		{
			name:  "exact length match",
			field: FieldSpec{Name: "UF", Kind: KindText, ExactLen: 2},
			value: "SP",
			want:  true,
		},
		{
			name:  "exact length mismatch",
			field: FieldSpec{Name: "UF", Kind: KindText, ExactLen: 2},
			value: "SPX",
			want:  false,
		},
		{
			name:  "max length counts runes not bytes",
			field: FieldSpec{Name: "NOMEFAN", Kind: KindText, MaxLen: 13},
			value: "Não Informado", // 13 chars, 14 bytes
			want:  true,
		},
		{
			name:  "max length exceeded",
			field: FieldSpec{Name: "CLASSEESTQ", Kind: KindText, MaxLen: 1},
			value: "AB",
			want:  false,
		},
		{
			name:  "date stored as string",
			field: FieldSpec{Name: "DATAPPED", Kind: KindDate},
			value: "2023-12-25",
			want:  true,
		},
		{
			name:  "unrestricted int accepts anything typed",
			field: FieldSpec{Name: "PRAZOPGTO", Kind: KindInt},
			value: int64(-99),
			want:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.field.InDomain(tt.value); got != tt.want {
				t.Fatalf("InDomain(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
