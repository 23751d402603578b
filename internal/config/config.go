// Package config defines the canonical, JSON-serializable configuration model
// for the warehouse refresh application. It is intentionally small, explicit,
// and dependency-free so that pipeline files can be loaded from disk and
// passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Minimalism: No third-party config libraries; decoding is performed by
//     the standard library, with environment overrides for secrets.
//
// Example (trimmed):
//
//	{
//	  "job":     "b2b-refresh",
//	  "source":  { "dsn": "postgresql://..." },
//	  "target":  { "kind": "postgres", "dsn": "postgresql://...", "auto_create_schema": true },
//	  "metrics": { "backend": "none", "pushgateway_url": "" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Environment variables that override DSNs from the pipeline file. Connection
// strings carry credentials, so they are the one thing the environment is
// allowed to win on.
const (
	EnvSourceDSN = "ETL_SOURCE_DSN"
	EnvTargetDSN = "ETL_TARGET_DSN"
)

// Pipeline describes one full warehouse refresh in JSON. It is the top-level
// object decoded from a pipeline file.
type Pipeline struct {
	// Job names this pipeline for logging and metrics labeling.
	Job string `json:"job"`

	// Source describes the normalized operational database to extract from.
	Source Source `json:"source"`

	// Target describes the warehouse the star schema is written to.
	Target Target `json:"target"`

	// Metrics configures the optional metrics backend.
	Metrics Metrics `json:"metrics"`
}

// Source identifies the operational database the seven source relations are
// read from. Extraction always uses pgx, so only a DSN is needed.
type Source struct {
	// DSN is the connection string for pgx/pgxpool (e.g., postgresql://...).
	DSN string `json:"dsn"`
}

// Target selects and configures the warehouse sink.
type Target struct {
	// Kind selects the storage backend. Registered kinds: "postgres",
	// "mysql", "sqlite".
	Kind string `json:"kind"`

	// DSN is the backend-specific connection string.
	DSN string `json:"dsn"`

	// AutoCreateSchema makes the process create the star-schema tables on
	// startup if they do not exist.
	AutoCreateSchema bool `json:"auto_create_schema"`
}

// Metrics configures where run metrics go. The zero value disables metrics.
type Metrics struct {
	// Backend selects the implementation: "none" (default) or "prompush".
	Backend string `json:"backend"`

	// PushgatewayURL is the Prometheus Pushgateway address, required when
	// Backend is "prompush".
	PushgatewayURL string `json:"pushgateway_url"`
}

// Load reads and decodes a pipeline file, then applies environment overrides
// for the source and target DSNs.
func Load(path string) (Pipeline, error) {
	var p Pipeline

	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if dsn := os.Getenv(EnvSourceDSN); dsn != "" {
		p.Source.DSN = dsn
	}
	if dsn := os.Getenv(EnvTargetDSN); dsn != "" {
		p.Target.DSN = dsn
	}

	return p, nil
}
