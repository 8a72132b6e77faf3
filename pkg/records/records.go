// Package records defines the in-flight record representation shared by the
// parser, transformers, validator, and storage layers.
package records

// Record is a single row keyed by canonical field name. Values are raw
// strings straight out of the parser, or typed values (int64, float64,
// string) after coercion.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value for key as a string. Missing keys, nil values and
// non-string values yield "".
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int64 returns the value for key as an int64 plus whether it was one.
func (r Record) Int64(key string) (int64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}
