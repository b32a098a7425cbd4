// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface consumed by middleware and the
// export service.
type Recorder interface {
	RecordRequest(method string, statusCode int, duration time.Duration)
	RecordExport(format string, outcome string)
	SetEntityCount(count int)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	exportsTotal    *prometheus.CounterVec
	entityCount     prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entityapp_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "entityapp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entityapp_exports_total",
			Help: "Export attempts by format and outcome",
		}, []string{"format", "outcome"}),
		entityCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "entityapp_entities",
			Help: "Current number of stored entities",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.exportsTotal,
		c.entityCount,
	)

	return c
}

// RecordRequest records one handled HTTP request.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// RecordExport records one export attempt. Outcome is one of
// "success", "unsupported_format", "empty", "delivery_failed", "error".
func (c *Collector) RecordExport(format string, outcome string) {
	c.exportsTotal.WithLabelValues(format, outcome).Inc()
}

// SetEntityCount updates the stored-entity gauge.
func (c *Collector) SetEntityCount(count int) {
	c.entityCount.Set(float64(count))
}

// Handler returns an HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
