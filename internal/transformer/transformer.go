// Package transformer turns raw parsed rows into typed, default-filled
// records ready for validation. Transformers are small, composable steps
// applied in order over a batch.
package transformer

import "erpload/pkg/records"

type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
