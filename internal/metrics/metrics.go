// Package metrics counts request and storage outcomes.
// Sessions are short-lived, so metrics are exported as a Prometheus
// textfile on exit rather than served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request kinds
const (
	KindSearch = "search"
	KindDetail = "detail"
)

// Request outcomes
const (
	OutcomeSuccess    = "success"
	OutcomeError      = "error"
	OutcomeNotFound   = "not_found"
	OutcomeCancelled  = "cancelled"
	OutcomeSuperseded = "superseded"
	OutcomeSkipped    = "skipped"
)

// Metrics holds the collectors of one session.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StorageWrites   *prometheus.CounterVec
}

// New creates and registers the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "omdb_requests_total",
			Help:      "OMDb requests by kind and how they were resolved.",
		}, []string{"kind", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "popcorn",
			Name:      "omdb_request_duration_seconds",
			Help:      "Round-trip time of OMDb requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		StorageWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "storage_writes_total",
			Help:      "Persisted state writes by result.",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(m.Requests, m.RequestDuration, m.StorageWrites)
	return m
}

// ObserveRequest records how a request was resolved
func (m *Metrics) ObserveRequest(kind, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(kind, outcome).Inc()
}

// ObserveDuration records the round-trip time of a request
func (m *Metrics) ObserveDuration(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveStorageWrite records a persisted state write
func (m *Metrics) ObserveStorageWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.StorageWrites.WithLabelValues(result).Inc()
}

// WriteTextfile writes all collected metrics in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
