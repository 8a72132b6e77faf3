// Package datadog_test contains unit tests for the datadog metrics backend.
package datadog

import (
	"sort"
	"testing"

	"erpload/internal/metrics"
)

// TestNewBackend constructs backends with different configurations and
// validates required fields and client initialization.
func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing Addr returns error",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "UDP address constructs a client",
			cfg:  Config{Addr: "127.0.0.1:8125"},
		},
		{
			name: "namespace and global tags are accepted as options",
			cfg: Config{
				Addr:       "127.0.0.1:8125",
				Namespace:  "erpload.",
				GlobalTags: []string{"env:test", "service:erpload"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewBackend(%+v) error = nil, want non-nil", tt.cfg)
				}
				if b != nil {
					t.Fatalf("NewBackend(%+v) backend = %v, want nil", tt.cfg, b)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewBackend(%+v) error = %v, want nil", tt.cfg, err)
			}
			if b == nil || b.client == nil {
				t.Fatalf("NewBackend(%+v) returned backend without a client", tt.cfg)
			}

			// Emitting over UDP needs no agent; these must not panic.
			b.IncCounter("erpload_step_total", 1, metrics.Labels{"step": "parse", "status": "ok"})
			b.ObserveHistogram("erpload_step_duration_seconds", 0.25, metrics.Labels{"step": "load", "status": "ok"})

			if err := b.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
		})
	}
}

// TestNilClientIsSafe ensures that a zero-value Backend ignores all
// operations instead of panicking.
func TestNilClientIsSafe(t *testing.T) {
	t.Parallel()

	b := &Backend{}

	b.IncCounter("erpload_rows_total", 1, metrics.Labels{"entity": "Repres", "kind": "parsed"})
	b.ObserveHistogram("erpload_step_duration_seconds", 1.5, metrics.Labels{"step": "load", "status": "ok"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() on zero-value backend error = %v, want nil", err)
	}
}

// TestLabelsToTags verifies label-to-tag conversion, including the empty case.
func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	if got := labelsToTags(nil); got != nil {
		t.Fatalf("labelsToTags(nil) = %v, want nil", got)
	}
	if got := labelsToTags(metrics.Labels{}); got != nil {
		t.Fatalf("labelsToTags(empty) = %v, want nil", got)
	}

	got := labelsToTags(metrics.Labels{"entity": "Pedidos", "kind": "inserted"})
	sort.Strings(got)
	want := []string{"entity:Pedidos", "kind:inserted"}
	if len(got) != len(want) {
		t.Fatalf("labelsToTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labelsToTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
