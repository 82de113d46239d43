// Package metrics provides Prometheus metrics for a pipeline run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "caseclip"

// Metrics holds the run's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CasesTotal         *prometheus.CounterVec
	GenerationAttempts *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
	LastRunTimestamp   prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CasesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_total",
			Help:      "Cases processed, by outcome",
		}, []string{"status"}),
		GenerationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_attempts_total",
			Help:      "Text generation requests, by operation and outcome",
		}, []string{"operation", "outcome"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each per-case stage in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"stage"}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveCase counts a finished case.
func (m *Metrics) ObserveCase(status string) {
	if m == nil {
		return
	}
	m.CasesTotal.WithLabelValues(status).Inc()
}

// ObserveAttempt counts one generation request.
func (m *Metrics) ObserveAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.GenerationAttempts.WithLabelValues(operation, outcome).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteTextfile stamps the run time and writes all metrics in the
// node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	m.LastRunTimestamp.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
