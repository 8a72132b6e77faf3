package schema

// InDomain reports whether a coerced value satisfies every domain restriction
// on the field. A value of the wrong dynamic type (including nil) is never in
// domain. Key fields carry no domain beyond their type.
func (f FieldSpec) InDomain(v any) bool {
	switch f.Kind {
	case KindInt:
		n, ok := v.(int64)
		if !ok {
			return false
		}
		if len(f.EnumInt) > 0 && !containsInt(f.EnumInt, n) {
			return false
		}
		if f.NonNegative && n < 0 {
			return false
		}
		return true

	case KindReal:
		x, ok := v.(float64)
		if !ok {
			return false
		}
		if f.NonNegative && x < 0 {
			return false
		}
		return true

	case KindText, KindDate:
		s, ok := v.(string)
		if !ok {
			return false
		}
		if len(f.EnumText) > 0 && !containsText(f.EnumText, s) {
			return false
		}
		// Length limits count characters, matching SQLite's LENGTH() on text.
		n := len([]rune(s))
		if f.ExactLen > 0 && n != f.ExactLen {
			return false
		}
		if f.MaxLen > 0 && n > f.MaxLen {
			return false
		}
		return true
	}
	return false
}

func containsInt(set []int64, n int64) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}

func containsText(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
