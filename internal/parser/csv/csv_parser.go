// Package csv implements a streaming CSV parser for the ERP export files.
// It tokenizes each line into a raw field-value list; field naming, cleaning
// and typing happen downstream. It avoids whole-file buffering and tolerates
// the quoting oddities real exports contain.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	// The header row is consumed and discarded; column meaning comes from
	// the entity schema, which mirrors the fixed export column order.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// ExpectedFields, when > 0, enforces a fixed field count per record.
	// Rows with a different width are skipped (soft-fail) and counted.
	ExpectedFields int
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first cell of the first row if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-row skip logging so a corrupt file cannot flood the
// log; skips are still counted past the limit.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the raw rows along with the
// number of rows that were skipped due to parse errors or field-count
// mismatches.
func (p *Parser) Parse(r io.Reader) ([][]string, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Lenient mode: unescaped quotes happen in these exports. Width is
	// enforced after read when ExpectedFields is set.
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if p.opt.HasHeader {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, 0, nil
			}
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
	}

	var out [][]string
	var skipped int
	first := !p.opt.HasHeader

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				// Soft-fail this row and continue.
				log.Printf("csv: skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if first {
			first = false
			if len(row) > 0 {
				row[0] = strings.TrimPrefix(row[0], utf8BOM)
			}
		}

		if p.opt.ExpectedFields > 0 && len(row) != p.opt.ExpectedFields {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping row %d: incorrect number of fields (expected %d, got %d)",
					line, p.opt.ExpectedFields, len(row))
			}
			skipped++
			continue
		}

		// csv.Reader may reuse its backing array; copy before keeping.
		rec := make([]string, len(row))
		copy(rec, row)
		out = append(out, rec)
	}

	return out, skipped, nil
}
