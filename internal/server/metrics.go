package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the HTTP metrics collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "grokcon").
	Namespace string

	// Subsystem is the metrics subsystem (default: "registry").
	Subsystem string

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to register with.
	Registry prometheus.Registerer
}

func defaultMetricsConfig(reg prometheus.Registerer) MetricsConfig {
	return MetricsConfig{
		Namespace: "grokcon",
		Subsystem: "registry",
		Buckets:   prometheus.DefBuckets,
		Registry:  reg,
	}
}

type httpMetrics struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	installsTotal       *prometheus.CounterVec
	componentsAvailable prometheus.Gauge
}

func newHTTPMetrics(config MetricsConfig) *httpMetrics {
	factory := promauto.With(config.Registry)

	return &httpMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"method", "route"}),

		// Only known component names are used as labels.
		installsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "simulated_installs_total",
			Help:      "Total number of simulated installs by component",
		}, []string{"component"}),

		componentsAvailable: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "components_available",
			Help:      "Number of components in the loaded catalog",
		}),
	}
}

func (m *httpMetrics) observe(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
