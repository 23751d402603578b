// Package prompush implements the metrics.Backend interface on top of a
// Prometheus Pushgateway. Metrics accumulate in a private registry and are
// sent in one shot by Flush at the end of a run, which fits a batch job
// better than a scrape endpoint would.
package prompush

import (
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/metrics"
)

// Backend pushes metrics to a Prometheus Pushgateway.
type Backend struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	pusher   *push.Pusher

	counters  map[string]*prometheus.CounterVec
	summaries map[string]*prometheus.SummaryVec
}

// New returns a Backend that will push to the gateway at url under the
// given job name.
func New(url, job string) *Backend {
	reg := prometheus.NewRegistry()
	return &Backend{
		registry:  reg,
		pusher:    push.New(url, job).Gatherer(reg),
		counters:  map[string]*prometheus.CounterVec{},
		summaries: map[string]*prometheus.SummaryVec{},
	}
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := labelKeys(labels)
	vec, ok := b.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name}, keys)
		b.registry.MustRegister(vec)
		b.counters[name] = vec
	}
	vec.With(prometheus.Labels(labels)).Add(delta)
}

// ObserveDuration implements metrics.Backend.
func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := labelKeys(labels)
	vec, ok := b.summaries[name]
	if !ok {
		vec = prometheus.NewSummaryVec(prometheus.SummaryOpts{Name: name}, keys)
		b.registry.MustRegister(vec)
		b.summaries[name] = vec
	}
	vec.With(prometheus.Labels(labels)).Observe(seconds)
}

// Flush pushes everything recorded so far to the gateway.
func (b *Backend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.pusher.Push(); err != nil {
		return fmt.Errorf("prompush: push failed: %w", err)
	}
	return nil
}

// labelKeys returns the sorted label names so a metric is always registered
// with a stable key set.
func labelKeys(labels metrics.Labels) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
