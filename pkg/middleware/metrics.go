package middleware

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/render"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "mount").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for mount duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "mount",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for mounts.
type Metrics struct {
	mountsTotal   *prometheus.CounterVec
	mountDuration *prometheus.HistogramVec
	mountErrors   *prometheus.CounterVec
	attrsApplied  prometheus.Counter
	contentBytes  prometheus.Histogram
}

// NewMetrics registers the mount collectors on the configured registry.
// Registering twice on the same registry panics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mountsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of mounts by tag and status",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "status"}),

		mountDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mount_duration_seconds",
			Help:        "Mount duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"tag"}),

		mountErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mount_errors_total",
			Help:        "Total number of failed mounts by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		attrsApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attributes_applied_total",
			Help:        "Total number of attributes assigned to mounted nodes",
			ConstLabels: config.ConstLabels,
		}),

		contentBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "content_bytes",
			Help:        "Size of mounted content in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 64, 256, 1024, 4096, 16384, 65536},
		}),
	}
}

// Middleware returns a render.Middleware recording into m.
func (m *Metrics) Middleware() render.Middleware {
	return render.MiddlewareFunc(func(call *render.Call, next func() error) error {
		tag := metricTag(call)
		start := time.Now()

		err := next()

		m.mountDuration.WithLabelValues(tag).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.mountErrors.WithLabelValues(errorCode(err)).Inc()
		} else {
			m.attrsApplied.Add(float64(len(call.Descriptor.AppliedAttrs())))
			m.contentBytes.Observe(float64(len(call.Descriptor.Content)))
		}
		m.mountsTotal.WithLabelValues(tag, status).Inc()

		return err
	})
}

// Prometheus creates middleware that collects Prometheus metrics for mounts.
//
// Metrics collected:
//   - mount_mounts_total: Counter of mounts by tag and status
//   - mount_mount_duration_seconds: Histogram of mount duration by tag
//   - mount_mount_errors_total: Counter of failures by error code
//   - mount_attributes_applied_total: Counter of assigned attributes
//   - mount_content_bytes: Histogram of content size
//
// Example:
//
//	r := render.NewRenderer(render.Config{
//	    Middleware: []render.Middleware{middleware.Prometheus()},
//	})
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) render.Middleware {
	return NewMetrics(opts...).Middleware()
}

// metricTag bounds label cardinality: unconstructible tags are reported as
// "invalid" and custom elements as "custom".
func metricTag(call *render.Call) string {
	tag := strings.ToLower(call.Tag())
	switch {
	case !dom.IsKnownElement(tag):
		return "invalid"
	case strings.Contains(tag, "-"):
		return "custom"
	default:
		return tag
	}
}

// errorCode returns the mount error code or "internal".
func errorCode(err error) string {
	if code := render.ErrorCode(err); code != "" {
		return code
	}
	return "internal"
}
