// Package metrics exposes Prometheus metrics for assignment runs and the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every metric of the service
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	runs                 *prometheus.CounterVec
	rolesAssigned        prometheus.Counter
	runDuration          prometheus.Histogram
	storeRetries         prometheus.Counter
	rejectedParticipants prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates and registers all metrics
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roles",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignment_runs_total",
		Help:      "Assignment runs by terminal status",
	}, []string{"status"})

	m.rolesAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roles_assigned_total",
		Help:      "Roles handed out across all runs",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignment_run_duration_seconds",
		Help:      "Wall time of an assignment run including store access",
		Buckets:   m.histogramBuckets,
	})

	m.storeRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_retries_total",
		Help:      "Store calls retried after a transient failure",
	})

	m.rejectedParticipants = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rejected_participants_total",
		Help:      "Participants skipped because their traits were out of range",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	return m
}

// RecordRun counts a finished run
func (m *Manager) RecordRun(status string, assigned int, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.rolesAssigned.Add(float64(assigned))
	m.runDuration.Observe(d.Seconds())
}

// RecordStoreRetry counts a retried store call
func (m *Manager) RecordStoreRetry() {
	if m == nil {
		return
	}
	m.storeRetries.Inc()
}

// RecordRejectedParticipant counts a participant skipped during scoring
func (m *Manager) RecordRejectedParticipant() {
	if m == nil {
		return
	}
	m.rejectedParticipants.Inc()
}

// RecordHTTPRequest counts one served request
func (m *Manager) RecordHTTPRequest(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Registry returns the registry metrics are registered on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
