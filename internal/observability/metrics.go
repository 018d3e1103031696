// Package observability bundles the Prometheus collectors for the
// carbondash server. Everything is registered on a private registry so
// tests can run side by side without collisions.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	DatasetRows    prometheus.Gauge
	DatasetReloads prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbondash_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"route", "method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carbondash_http_request_duration_seconds",
				Help:    "Duration of HTTP request handling",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "carbondash_dataset_rows",
			Help: "Number of observations in the loaded dataset",
		}),
		DatasetReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carbondash_dataset_reloads_total",
			Help: "Total number of dataset reloads",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carbondash_cache_hits_total",
			Help: "Total number of query cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carbondash_cache_misses_total",
			Help: "Total number of query cache misses",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.DatasetRows,
		m.DatasetReloads,
		m.CacheHits,
		m.CacheMisses,
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(route, method string, code string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, code).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
