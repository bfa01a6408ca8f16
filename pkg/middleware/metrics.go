package middleware

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

// MetricsConfig configures the Prometheus render observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "meta").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus render observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "meta",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// RenderMetrics records head tag renders. It implements meta.Observer.
type RenderMetrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
}

// Collectors are registered once per Registerer; registering the same names
// twice panics in promauto.
var (
	registeredMetrics   = map[prometheus.Registerer]*RenderMetrics{}
	registeredMetricsMu sync.Mutex
)

func newRenderMetrics(config MetricsConfig) *RenderMetrics {
	factory := promauto.With(config.Registry)

	return &RenderMetrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of head tag renders",
			ConstLabels: config.ConstLabels,
		}, []string{"header", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Head tag render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"header"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed head tag renders",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),
	}
}

// Prometheus returns an observer that collects render metrics. Pass it to
// meta.WithObserver.
//
// Metrics collected (default namespace and subsystem):
//   - vango_meta_renders_total: Counter of renders by header and status
//   - vango_meta_render_duration_seconds: Histogram of render duration by header
//   - vango_meta_render_errors_total: Counter of failed renders by error type
//
// Example:
//
//	obs := middleware.Prometheus(middleware.WithNamespace("shop"))
//	reg := meta.New(html, urls, req, meta.WithObserver(obs))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *RenderMetrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	registeredMetricsMu.Lock()
	defer registeredMetricsMu.Unlock()
	if m, ok := registeredMetrics[config.Registry]; ok {
		return m
	}
	m := newRenderMetrics(config)
	registeredMetrics[config.Registry] = m
	return m
}

// ObserveRender implements meta.Observer.
func (m *RenderMetrics) ObserveRender(header string, d time.Duration, err error) {
	m.renderDuration.WithLabelValues(header).Observe(d.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		m.renderErrors.WithLabelValues(categorizeError(err)).Inc()
	}
	m.rendersTotal.WithLabelValues(header, status).Inc()
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, routepath.ErrIncompleteRoute):
		return "incomplete_route"
	case errors.Is(err, routepath.ErrPathEscapesRoot),
		errors.Is(err, routepath.ErrBackslashInPath),
		errors.Is(err, routepath.ErrNullByteInPath),
		errors.Is(err, routepath.ErrInvalidPercentEscape):
		return "invalid_path"
	case errors.Is(err, meta.ErrURLBuild):
		return "url_build"
	case errors.Is(err, meta.ErrLanguageMismatch):
		return "language_mismatch"
	case errors.Is(err, meta.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}
