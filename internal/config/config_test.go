package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write config: %v", err)
	}
	return path
}

// validPipeline builds a pipeline that passes validation, for tests to break
// one piece at a time.
func validPipeline(tb testing.TB) Pipeline {
	tb.Helper()
	return Pipeline{
		Job: "erp-nightly",
		Sources: map[string]Source{
			"Repres":      {Path: "data/repres.csv", HasHeader: true},
			"FornClien":   {Path: "data/fornclien.csv", HasHeader: true},
			"Produtos":    {Path: "data/produtos.csv", HasHeader: true},
			"Pedidos":     {Path: "data/pedidos.csv", HasHeader: true},
			"PedidosItem": {Path: "data/pedidositem.csv", HasHeader: true},
		},
		Storage: Storage{Kind: "sqlite", DSN: "file:erp.db"},
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `{
			"job": "erp-nightly",
			"sources": {
				"Repres": { "path": "data/repres.csv", "has_header": true, "encoding": "windows-1252" }
			},
			"storage": { "kind": "sqlite", "dsn": "file:erp.db" },
			"reject_log": "out/rejects.csv"
		}`)

		p, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if p.Job != "erp-nightly" {
			t.Fatalf("Job = %q", p.Job)
		}
		src, ok := p.Sources["Repres"]
		if !ok {
			t.Fatalf("Sources missing Repres: %v", p.Sources)
		}
		if src.Path != "data/repres.csv" || !src.HasHeader || src.Encoding != "windows-1252" {
			t.Fatalf("Repres source = %+v", src)
		}
		if p.Storage.Kind != "sqlite" || p.RejectLog != "out/rejects.csv" {
			t.Fatalf("pipeline = %+v", p)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `{"job": "x", "nope": 1}`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestSourceComma(t *testing.T) {
	t.Parallel()

	if got := (Source{}).Comma(); got != ',' {
		t.Fatalf("default Comma() = %q", got)
	}
	if got := (Source{Delimiter: ";"}).Comma(); got != ';' {
		t.Fatalf("Comma() = %q", got)
	}
}

func TestValidatePipeline(t *testing.T) {
	t.Parallel()

	hasIssue := func(issues []Issue, sev IssueSeverity, path string) bool {
		for _, i := range issues {
			if i.Severity == sev && i.Path == path {
				return true
			}
		}
		return false
	}

	t.Run("valid pipeline has no issues", func(t *testing.T) {
		t.Parallel()
		if issues := ValidatePipeline(validPipeline(t)); len(issues) != 0 {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("empty job", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		p.Job = "  "
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityError, "job") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("missing entity source", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		delete(p.Sources, "Pedidos")
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityError, "sources.Pedidos") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("empty source path", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		s := p.Sources["Repres"]
		s.Path = ""
		p.Sources["Repres"] = s
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityError, "sources.Repres.path") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("multi-char delimiter", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		s := p.Sources["Repres"]
		s.Delimiter = ";;"
		p.Sources["Repres"] = s
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityError, "sources.Repres.delimiter") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		s := p.Sources["Repres"]
		s.Encoding = "koi8-r"
		p.Sources["Repres"] = s
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityError, "sources.Repres.encoding") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("unknown source key warns", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		p.Sources["Rpres"] = Source{Path: "typo.csv"}
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityWarning, "sources.Rpres") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("unknown storage kind warns", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		p.Storage.Kind = "oracle"
		if issues := ValidatePipeline(p); !hasIssue(issues, SeverityWarning, "storage.kind") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("empty storage", func(t *testing.T) {
		t.Parallel()
		p := validPipeline(t)
		p.Storage = Storage{}
		issues := ValidatePipeline(p)
		if !hasIssue(issues, SeverityError, "storage.kind") || !hasIssue(issues, SeverityError, "storage.dsn") {
			t.Fatalf("issues = %v", issues)
		}
	})
}
