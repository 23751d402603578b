// Package config provides configuration models and helpers for warehouse
// refresh pipelines.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "target.kind",
// "metrics.pushgateway_url"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
//
// Example:
//
//	p, err := config.Load(path)
//	if err != nil { ... }
//	issues := config.ValidatePipeline(p)
//	for _, iss := range issues {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateTarget(p.Target)...)
	issues = append(issues, validateMetrics(p.Metrics)...)

	return issues
}

// validateSource validates Source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.dsn",
			Message:  "source.dsn must not be empty (set it in the pipeline file or via " + EnvSourceDSN + ")",
		})
	}

	return issues
}

// validateTarget validates Target configuration.
func validateTarget(t Target) []Issue {
	var issues []Issue

	if strings.TrimSpace(t.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.kind",
			Message:  "target.kind must not be empty",
		})
		return issues
	}

	// Known target kinds. Unknown kinds are warnings (for forward
	// compatibility with backends registered elsewhere).
	known := map[string]struct{}{
		"postgres": {},
		"mysql":    {},
		"sqlite":   {},
	}
	if _, ok := known[t.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "target.kind",
			Message:  fmt.Sprintf("unknown target kind %q; ensure a matching backend is registered", t.Kind),
		})
	}

	if strings.TrimSpace(t.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "target.dsn",
			Message:  "target.dsn must not be empty (set it in the pipeline file or via " + EnvTargetDSN + ")",
		})
	}

	return issues
}

// validateMetrics validates Metrics configuration.
func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
		if strings.TrimSpace(m.PushgatewayURL) != "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway_url is set but metrics.backend is disabled; nothing will be pushed",
			})
		}
	case "prompush":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "metrics.backend is \"prompush\" but pushgateway_url is empty",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}

	return issues
}
