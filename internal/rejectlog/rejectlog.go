// Package rejectlog persists rejected rows to a CSV file so operators can
// inspect, fix and replay them. Rejections are also counted per reason for
// the run summary.
package rejectlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"erpload/internal/validate"
)

var header = []string{"entity", "line_number", "reason", "field", "detail", "fingerprint"}

// Log appends rejected rows to a CSV file. Not safe for concurrent use;
// the pipeline writes entities sequentially.
type Log struct {
	reasons map[validate.Reason]int
	w       *csv.Writer
	f       *os.File
}

// New creates the reject log at path, creating parent directories as needed.
// The header row is written immediately so an empty log is still parseable.
func New(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create reject log dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create reject log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write reject log header: %w", err)
	}
	return &Log{reasons: make(map[validate.Reason]int), w: w, f: f}, nil
}

// Add appends one rejection for the named entity.
func (l *Log) Add(entity string, r validate.Reject) {
	if l == nil {
		return
	}
	l.reasons[r.Reason]++
	_ = l.w.Write([]string{
		entity,
		strconv.Itoa(r.Line),
		string(r.Reason),
		r.Field,
		r.Detail,
		strconv.FormatUint(r.Fingerprint, 16),
	})
}

// Counts returns the number of rejections recorded per reason.
func (l *Log) Counts() map[validate.Reason]int {
	if l == nil {
		return nil
	}
	out := make(map[validate.Reason]int, len(l.reasons))
	for k, v := range l.reasons {
		out[k] = v
	}
	return out
}

// Close flushes buffered rows and closes the file.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return fmt.Errorf("flush reject log: %w", err)
	}
	return l.f.Close()
}
