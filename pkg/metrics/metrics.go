// Package metrics provides Prometheus metrics for the triage pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus metrics for the pipeline.
type Manager struct {
	namespace string
	subsystem string
	enabled   bool
	registry  *prometheus.Registry

	// Fetch metrics
	pagesFetched    prometheus.Counter
	patientsFetched prometheus.Counter

	// Transport metrics
	retryAttempts   *prometheus.CounterVec
	transportErrors prometheus.Counter

	// Data quality metrics
	invalidFields *prometheus.CounterVec

	// Assessment metrics
	alertBucketSize *prometheus.GaugeVec
	submissions     prometheus.Counter
	runDuration     prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "triage",
		subsystem: "pipeline",
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.pagesFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pages_fetched_total",
		Help:      "Number of patient pages fetched from the assessment API.",
	})
	m.patientsFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "patients_fetched_total",
		Help:      "Number of patient records fetched across all pages.",
	})
	m.retryAttempts = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "retry_attempts_total",
		Help:      "Retries performed against the assessment API, by status code.",
	}, []string{"status"})
	m.transportErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transport_errors_total",
		Help:      "Requests that failed terminally (non-retryable or retries exhausted).",
	})
	m.invalidFields = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_fields_total",
		Help:      "Patient fields that failed normalization, by field.",
	}, []string{"field"})
	m.alertBucketSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alert_bucket_size",
		Help:      "Number of patient identifiers in each alert bucket of the last run.",
	}, []string{"bucket"})
	m.submissions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Assessment payloads submitted.",
	})
	m.runDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of a full fetch-score-submit run.",
		Buckets:   prometheus.DefBuckets,
	})
}

// Handler returns an HTTP handler exposing this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Package-level helpers recording into the global manager.

// RecordPageFetched increments the fetched page counter.
func RecordPageFetched() {
	if globalManager.enabled {
		globalManager.pagesFetched.Inc()
	}
}

// RecordPatientsFetched adds n to the fetched patient counter.
func RecordPatientsFetched(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.patientsFetched.Add(float64(n))
	}
}

// RecordRetryAttempt counts a retry caused by the given status code.
func RecordRetryAttempt(status string) {
	if globalManager.enabled {
		globalManager.retryAttempts.WithLabelValues(status).Inc()
	}
}

// RecordTransportError counts a terminally failed request.
func RecordTransportError() {
	if globalManager.enabled {
		globalManager.transportErrors.Inc()
	}
}

// RecordInvalidField counts a field that failed normalization.
func RecordInvalidField(field string) {
	if globalManager.enabled {
		globalManager.invalidFields.WithLabelValues(field).Inc()
	}
}

// UpdateAlertBucketSize records the size of an alert bucket.
func UpdateAlertBucketSize(bucket string, n int) {
	if globalManager.enabled {
		globalManager.alertBucketSize.WithLabelValues(bucket).Set(float64(n))
	}
}

// RecordSubmission counts a submitted assessment payload.
func RecordSubmission() {
	if globalManager.enabled {
		globalManager.submissions.Inc()
	}
}

// ObserveRunDuration records the duration of a full pipeline run.
func ObserveRunDuration(d time.Duration) {
	if globalManager.enabled {
		globalManager.runDuration.Observe(d.Seconds())
	}
}

// Handler returns the global manager's metrics handler.
func Handler() http.Handler { return globalManager.Handler() }
