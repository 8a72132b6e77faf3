// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of
// issues (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"

	"erpload/internal/schema"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "sources.Repres.path"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var supportedEncodings = map[string]bool{
	"": true, "utf-8": true, "utf8": true,
	"windows-1252": true, "cp1252": true,
	"iso-8859-1": true, "latin1": true,
}

var knownStorageKinds = map[string]bool{"sqlite": true, "postgres": true}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue
// values; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	// Every entity needs a source; the load order is fixed, so a missing
	// file cannot simply be skipped.
	for _, e := range schema.Entities() {
		src, ok := p.Sources[e.Name]
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "sources." + e.Name,
				Message:  "missing source for entity",
			})
			continue
		}
		issues = append(issues, validateSource(e.Name, src)...)
	}

	// Unknown source keys are most likely typos of entity names.
	known := map[string]bool{}
	for _, e := range schema.Entities() {
		known[e.Name] = true
	}
	for name := range p.Sources {
		if !known[name] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "sources." + name,
				Message:  "source does not match any entity and will be ignored",
			})
		}
	}

	issues = append(issues, validateStorage(p.Storage)...)
	return issues
}

func validateSource(name string, s Source) []Issue {
	var issues []Issue
	path := "sources." + name

	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".path",
			Message:  "path must not be empty",
		})
	}
	if len([]rune(s.Delimiter)) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".delimiter",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", s.Delimiter),
		})
	}
	if !supportedEncodings[strings.ToLower(strings.TrimSpace(s.Encoding))] {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".encoding",
			Message:  fmt.Sprintf("unsupported encoding %q", s.Encoding),
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage kind must not be empty",
		})
	} else if !knownStorageKinds[s.Kind] {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; run will fail unless a backend registered it", s.Kind),
		})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage dsn must not be empty",
		})
	}
	return issues
}
