// Package coerce contains pure field-level conversion helpers used by the
// record normalizer. Every function is side-effect free and reports failure
// through its second return value; deciding what to substitute on failure is
// the caller's job, so default policy stays independently testable.
package coerce

import (
	"strconv"
	"strings"
	"time"
)

// Int converts a raw export value such as "553,465" or "4.0" into an int64.
// Thousands separators are stripped before parsing; values with a fractional
// notation are parsed as floats and truncated, matching the source system's
// habit of exporting integer columns as "4.0".
func Int(raw string) (int64, bool) {
	s := cleanNumeric(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// Float converts a raw export value such as "1,234.50" into a float64.
func Float(raw string) (float64, bool) {
	s := cleanNumeric(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Text trims surrounding whitespace and scrubs the mis-decoded NBSP sequence
// that shows up in these exports.
func Text(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "Â ", " "))
}

// Date parses raw with the given layout and re-renders it as ISO 2006-01-02,
// so downstream storage always sees one canonical date form.
func Date(raw, layout string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		// Some exports already carry ISO dates; accept those too.
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return "", false
		}
	}
	return t.Format("2006-01-02"), true
}

// cleanNumeric strips thousands separators and surrounding whitespace.
// The export uses "," as the grouping character and "." as the decimal point.
func cleanNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(s, ",", "")
}
