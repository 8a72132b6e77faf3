package transformer

import (
	"erpload/internal/coerce"
	"erpload/internal/schema"
	"erpload/pkg/records"
)

// Coerce applies an entity's field specs to a batch of raw records: each
// value is converted to its target type and the per-field default policy is
// applied. After this step every Substitute-policy field holds a valid typed
// value; key fields and RejectRow-policy fields may still hold nil or an
// out-of-domain value, which the validator turns into a recorded rejection.
type Coerce struct {
	Entity schema.Entity
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, f := range c.Entity.Fields {
			r[f.Name] = coerceField(f, r[f.Name])
		}
	}
	return in
}

func coerceField(f schema.FieldSpec, v any) any {
	raw, _ := v.(string)

	if raw == "" {
		// Keys are never defaulted; an absent key is the validator's call.
		if f.PrimaryKey || f.References != "" {
			return nil
		}
		if f.Default != nil {
			return f.Default
		}
		return nil
	}

	switch f.Kind {
	case schema.KindInt:
		n, ok := coerce.Int(raw)
		if !ok {
			return failed(f, raw)
		}
		return checkedValue(f, n)

	case schema.KindReal:
		x, ok := coerce.Float(raw)
		if !ok {
			return failed(f, raw)
		}
		return checkedValue(f, x)

	case schema.KindDate:
		s, ok := coerce.Date(raw, f.Layout)
		if !ok {
			return failed(f, raw)
		}
		return s

	default: // KindText
		return checkedValue(f, raw)
	}
}

// failed resolves a value that could not be coerced to the field's type.
func failed(f schema.FieldSpec, raw string) any {
	if f.PrimaryKey || f.References != "" {
		return nil
	}
	if f.OnViolation == schema.RejectRow {
		// Leave the offending value visible so the rejection reason can
		// point at it.
		return raw
	}
	if f.Default != nil {
		return f.Default
	}
	return nil
}

// checkedValue resolves a successfully typed value against the field domain.
func checkedValue(f schema.FieldSpec, v any) any {
	if f.PrimaryKey || f.References != "" {
		return v
	}
	if f.InDomain(v) {
		return v
	}
	if f.OnViolation == schema.RejectRow {
		return v
	}
	return f.Default
}
