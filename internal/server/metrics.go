package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refactoring outcomes used as metric labels
const (
	OutcomeRegenerated = "regenerated"
	OutcomeUnchanged   = "unchanged"
	OutcomeDiagnostic  = "diagnostic"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Metrics holds the collectors of the HTTP host on a private registry
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors:
//   - ctorgen_refactorings_total (counter, by outcome)
//   - ctorgen_refactoring_duration_seconds (histogram, by outcome)
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ctorgen",
			Name:      "refactorings_total",
			Help:      "Total number of refactoring requests by outcome",
		},
		[]string{"outcome"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ctorgen",
			Name:      "refactoring_duration_seconds",
			Help:      "Duration of refactoring requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"outcome"},
	)

	collectors := []prometheus.Collector{
		requests,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return &Metrics{registry: registry, requests: requests, duration: duration}, nil
}

// Observe records one finished request
func (m *Metrics) Observe(outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
