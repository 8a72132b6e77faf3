package transformer

import (
	"erpload/internal/coerce"
	"erpload/pkg/records"
)

// Normalize scrubs every string value in place: surrounding whitespace is
// trimmed and the mis-decoded NBSP sequence the ERP export produces is
// collapsed to a plain space.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			if s, ok := v.(string); ok {
				r[k] = coerce.Text(s)
			}
		}
	}
	return in
}
