// Package validate implements the in-memory referential integrity check that
// gates every row before it can reach the store.
//
// Each entity is validated in one pass, in load order. The pass builds the
// entity's key set as it accepts rows, and consults only the key sets of
// entities validated before it, so a foreign key can never resolve forward.
// Key sets are explicit inputs and outputs of a pass, never ambient state:
// the caller carries them from one entity to the next.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"erpload/internal/schema"
	"erpload/pkg/records"
)

// Reason classifies why a row was rejected.
type Reason string

const (
	ReasonMissingPK    Reason = "missing-pk"
	ReasonDuplicateKey Reason = "duplicate-key"
	ReasonOrphanFK     Reason = "orphan-fk"
	ReasonDomain       Reason = "domain-violation"
)

// keySep joins composite key components. 0x1f cannot occur in coerced values.
const keySep = '\x1f'

// KeySet holds the accepted key values of one entity. Composite keys are
// joined component strings; membership tests are O(1).
type KeySet map[string]struct{}

func (k KeySet) Has(key string) bool {
	_, ok := k[key]
	return ok
}

func (k KeySet) Add(key string) { k[key] = struct{}{} }

func (k KeySet) Len() int { return len(k) }

// Reject records one dropped row with enough context to diagnose it.
type Reject struct {
	// Line is the 1-based position of the row within the validated batch.
	// Header rows and rows the parser skipped are not counted, so it can
	// drift from the physical line number in the source file.
	Line   int
	Reason Reason
	// Field names the column that triggered the rejection, where one can be
	// singled out.
	Field string
	// Detail is a short human-readable explanation.
	Detail string
	// Fingerprint is an xxh3 hash of the row's canonical form. Identical
	// bad rows resubmitted across runs hash identically, which makes them
	// easy to spot in reject logs.
	Fingerprint uint64
}

// Result is the outcome of one entity pass.
type Result struct {
	Entity   string
	Accepted []records.Record
	Rejected []Reject
	// Keys contains the primary key of every accepted row. It is the only
	// key universe later entities may resolve foreign keys against.
	Keys KeySet
}

// Validator validates one entity against the key sets of its upstream
// entities. Upstream maps entity name to the KeySet produced by that
// entity's own pass; a missing entry behaves as an empty set, so every FK
// into it fails.
type Validator struct {
	Entity   schema.Entity
	Upstream map[string]KeySet
}

// Run performs the single validation pass over normalized records.
// Accepted rows keep their input order. Duplicate keys follow
// first-occurrence-wins: the earlier row stays, later ones are rejected.
func (v Validator) Run(in []records.Record) Result {
	res := Result{
		Entity:   v.Entity.Name,
		Accepted: make([]records.Record, 0, len(in)),
		Keys:     make(KeySet, len(in)),
	}

	pkCols := v.Entity.PrimaryKey()
	fks := v.Entity.ForeignKeys()

	for i, r := range in {
		line := i + 1

		key, badCol, ok := rowKey(r, pkCols)
		if !ok {
			res.reject(r, v.Entity, Reject{
				Line:   line,
				Reason: ReasonMissingPK,
				Field:  badCol,
				Detail: fmt.Sprintf("primary key component %s missing or not numeric", badCol),
			})
			continue
		}
		if res.Keys.Has(key) {
			res.reject(r, v.Entity, Reject{
				Line:   line,
				Reason: ReasonDuplicateKey,
				Field:  pkCols[0],
				Detail: fmt.Sprintf("key (%s) already accepted", strings.ReplaceAll(key, string(keySep), ", ")),
			})
			continue
		}

		if rej, bad := v.checkForeignKeys(r, fks, line); bad {
			res.reject(r, v.Entity, rej)
			continue
		}

		if rej, bad := v.checkDomains(r, line); bad {
			res.reject(r, v.Entity, rej)
			continue
		}

		res.Keys.Add(key)
		res.Accepted = append(res.Accepted, r)
	}

	return res
}

func (v Validator) checkForeignKeys(r records.Record, fks []schema.ForeignKey, line int) (Reject, bool) {
	for _, fk := range fks {
		n, ok := r[fk.Column].(int64)
		if !ok {
			return Reject{
				Line:   line,
				Reason: ReasonOrphanFK,
				Field:  fk.Column,
				Detail: fmt.Sprintf("%s has no usable value to resolve against %s", fk.Column, fk.Entity),
			}, true
		}
		if !v.Upstream[fk.Entity].Has(strconv.FormatInt(n, 10)) {
			return Reject{
				Line:   line,
				Reason: ReasonOrphanFK,
				Field:  fk.Column,
				Detail: fmt.Sprintf("%s=%d does not exist in %s", fk.Column, n, fk.Entity),
			}, true
		}
	}
	return Reject{}, false
}

func (v Validator) checkDomains(r records.Record, line int) (Reject, bool) {
	for _, f := range v.Entity.Fields {
		if f.PrimaryKey || f.References != "" || f.OnViolation != schema.RejectRow {
			continue
		}
		if !f.InDomain(r[f.Name]) {
			return Reject{
				Line:   line,
				Reason: ReasonDomain,
				Field:  f.Name,
				Detail: fmt.Sprintf("%s=%s outside declared domain", f.Name, asString(r[f.Name])),
			}, true
		}
	}
	return Reject{}, false
}

func (r *Result) reject(rec records.Record, e schema.Entity, rej Reject) {
	rej.Fingerprint = Fingerprint(rec, e)
	r.Rejected = append(r.Rejected, rej)
}

// rowKey builds the (possibly composite) key string for a record. Every key
// component must be a coerced int64; the first unusable component is
// returned for diagnostics.
func rowKey(r records.Record, pkCols []string) (string, string, bool) {
	var b strings.Builder
	for i, col := range pkCols {
		n, ok := r[col].(int64)
		if !ok {
			return "", col, false
		}
		if i > 0 {
			b.WriteByte(keySep)
		}
		b.WriteString(strconv.FormatInt(n, 10))
	}
	return b.String(), "", true
}

// Fingerprint hashes a record's canonical form (values in entity column
// order, separator-joined) with xxh3.
func Fingerprint(r records.Record, e schema.Entity) uint64 {
	var b strings.Builder
	for i, col := range e.Columns() {
		if i > 0 {
			b.WriteByte(keySep)
		}
		b.WriteString(asString(r[col]))
	}
	return xxh3.HashString(b.String())
}

// asString converts the coerced value types to string without fmt overhead.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
