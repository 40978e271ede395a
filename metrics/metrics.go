// Package metrics exposes Prometheus collectors for datastore dispatch.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome is the result class of a dispatched call.
type Outcome string

const (
	// OutcomeOK means the delegated call succeeded.
	OutcomeOK Outcome = "ok"
	// OutcomeError means the delegated call returned an error.
	OutcomeError Outcome = "error"
	// OutcomeNotSupported means the call was rejected before delegation.
	OutcomeNotSupported Outcome = "not_supported"
)

// Collector counts dispatched calls and times delegated ones.
// A nil *Collector is valid and records nothing.
type Collector struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a collector whose metrics are prefixed with namespace.
func New(namespace string) *Collector {
	return &Collector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "datastore",
			Name:      "calls_total",
			Help:      "Datastore calls by datastore, method and outcome.",
		}, []string{"datastore", "method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "datastore",
			Name:      "call_duration_seconds",
			Help:      "Duration of delegated datastore calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"datastore", "method"}),
	}
}

// Register registers the collector's metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	if c == nil {
		return nil
	}

	for _, collector := range []prometheus.Collector{c.calls, c.duration} {
		if err := reg.Register(collector); err != nil {
			return fmt.Errorf("failed to register datastore metrics: %w", err)
		}
	}

	return nil
}

// Observe records one call. The duration is only recorded for delegated calls.
func (c *Collector) Observe(datastore, method string, outcome Outcome, elapsed time.Duration) {
	if c == nil {
		return
	}

	c.calls.WithLabelValues(datastore, method, string(outcome)).Inc()

	if outcome != OutcomeNotSupported {
		c.duration.WithLabelValues(datastore, method).Observe(elapsed.Seconds())
	}
}

// Calls returns the counter vector, for tests and custom exposition.
func (c *Collector) Calls() *prometheus.CounterVec {
	return c.calls
}
