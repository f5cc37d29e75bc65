// Package metrics provides Prometheus metrics for the enso scoring service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

var (
	defaultLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000}
	defaultScoreBuckets   = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 95, 100}
)

// Manager manages all Prometheus metrics for the enso service.
type Manager struct {
	namespace        string
	subsystem        string
	latencyBuckets  []float64
	scoreBuckets    []float64
	enabled         bool
	refreshInterval time.Duration
	constLabels     map[string]string
	metricPrefix    string
	registry        prometheus.Registerer

	// Stroke lifecycle
	strokesStarted   prometheus.Counter
	strokesDiscarded prometheus.Counter
	strokesScored    *prometheus.CounterVec
	strokesReset     prometheus.Counter
	scoreValue       prometheus.Histogram
	strokePoints     prometheus.Histogram
	scoringLatency   prometheus.Histogram

	// Rendering
	renderLatency prometheus.Histogram
	renderErrors  prometheus.Counter

	// Live sessions
	activeSessions prometheus.Gauge
	sessionEvents  *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "enso",
		subsystem:        "circle",
		latencyBuckets:  defaultLatencyBuckets,
		scoreBuckets:    defaultScoreBuckets,
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		constLabels:     make(map[string]string),
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauges should be refreshed by background updaters.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.strokesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("strokes_started_total"),
		Help:        "Total number of strokes started by a pointer press",
		ConstLabels: labels,
	})

	m.strokesDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("strokes_discarded_total"),
		Help:        "Strokes dropped as accidental taps before scoring",
		ConstLabels: labels,
	})

	m.strokesScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("strokes_scored_total"),
		Help:        "Strokes scored, by feedback class",
		ConstLabels: labels,
	}, []string{"feedback"})

	m.strokesReset = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("resets_total"),
		Help:        "Number of surface resets",
		ConstLabels: labels,
	})

	m.scoreValue = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("score"),
		Help:        "Distribution of final scores",
		Buckets:     m.scoreBuckets,
		ConstLabels: labels,
	})

	m.strokePoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("stroke_points"),
		Help:        "Number of samples in scored strokes",
		Buckets:     prometheus.ExponentialBuckets(10, 2, 10),
		ConstLabels: labels,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("scoring_latency_milliseconds"),
		Help:        "Time spent fitting and grading a stroke",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: labels,
	})

	m.renderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("render_latency_milliseconds"),
		Help:        "Time spent rasterizing a stroke image",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	})

	m.renderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("render_errors_total"),
		Help:        "Render calls that failed and were skipped",
		ConstLabels: labels,
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("active_sessions"),
		Help:        "Live drawing sessions over websocket",
		ConstLabels: labels,
	})

	m.sessionEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("session_events_total"),
		Help:        "Pointer events received on live sessions, by type",
		ConstLabels: labels,
	}, []string{"type"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.latencyBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_component_total"),
			Help:        "Errors by component and error type",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Errors by endpoint, method and error type",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("error_latency_milliseconds"),
			Help:        "Latency of operations that ended in an error",
			Buckets:     m.latencyBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordStrokeStarted increments the started strokes counter.
func RecordStrokeStarted() {
	if !globalManager.enabled {
		return
	}
	globalManager.strokesStarted.Inc()
}

// RecordStrokeDiscarded increments the discarded strokes counter.
func RecordStrokeDiscarded() {
	if !globalManager.enabled {
		return
	}
	globalManager.strokesDiscarded.Inc()
}

// RecordStrokeScored records a scored stroke: its class, score and length.
func RecordStrokeScored(feedback string, score, points int) {
	if !globalManager.enabled {
		return
	}
	globalManager.strokesScored.WithLabelValues(feedback).Inc()
	globalManager.scoreValue.Observe(float64(score))
	globalManager.strokePoints.Observe(float64(points))
}

// RecordReset increments the reset counter.
func RecordReset() {
	if !globalManager.enabled {
		return
	}
	globalManager.strokesReset.Inc()
}

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordRenderLatency records rendering latency in milliseconds.
func RecordRenderLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordRenderError increments the render error counter.
func RecordRenderError() {
	if !globalManager.enabled {
		return
	}
	globalManager.renderErrors.Inc()
}

// SessionOpened increments the live session gauge.
func SessionOpened() {
	if !globalManager.enabled {
		return
	}
	globalManager.activeSessions.Inc()
}

// SessionClosed decrements the live session gauge.
func SessionClosed() {
	if !globalManager.enabled {
		return
	}
	globalManager.activeSessions.Dec()
}

// RecordSessionEvent counts a pointer event received on a live session.
func RecordSessionEvent(eventType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.sessionEvents.WithLabelValues(eventType).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// SetEnabled turns recording on or off for the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// RefreshInterval is how often background updaters should sample system gauges.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
