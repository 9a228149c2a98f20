package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitflow_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitflow_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitflow_http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	scansProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitflow_scans_processed_total",
			Help: "Total number of scan uploads processed, by outcome",
		},
		[]string{"outcome"},
	)
)

// Metrics returns a middleware that records request counts, latencies and
// in-flight totals. The matched route template is used as the route label to
// keep cardinality low.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

// RecordScanOutcome counts a processed scan upload. outcome is "ok",
// "rejected" or "failed".
func RecordScanOutcome(outcome string) {
	scansProcessedTotal.WithLabelValues(outcome).Inc()
}
