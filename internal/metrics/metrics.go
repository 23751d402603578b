// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// A narrow Backend interface (counters plus duration observations) sits in
// front of a pluggable global backend that defaults to a no-op, so metric
// calls are always safe even when nothing is configured. Concrete systems
// (Prometheus Pushgateway) live in subpackages, mirroring the storage
// registry pattern: the core depends only on this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes buffered metrics if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordPhase measures one pipeline phase (extract, bind, transform, load):
// a success/failure counter plus its duration.
func RecordPhase(job, phase string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "phase": phase, "status": status}

	backend.IncCounter("etl_phase_total", 1, lbls)
	backend.ObserveDuration("etl_phase_duration_seconds", d.Seconds(), lbls)
}

// RecordTableRows counts rows written per target table in one run.
func RecordTableRows(job, table string, n int64) {
	if n <= 0 {
		return
	}
	backend.IncCounter("etl_table_rows_total", float64(n), Labels{
		"job":   job,
		"table": table,
	})
}
