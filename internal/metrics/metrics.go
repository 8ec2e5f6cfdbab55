// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "learnmarket"

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Collector holds the application metrics.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	checkouts     *prometheus.CounterVec
	verifications *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
}

// NewCollector creates the collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result.",
		}, []string{"result"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Payment claim verifications by result.",
		}, []string{"result"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_deliveries_total",
			Help:      "Outbox event deliveries by event type and result.",
		}, []string{"event_type", "result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.checkouts,
		c.verifications,
		c.deliveries,
	)
	return c
}

func (c *Collector) ObserveHTTP(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCheckout counts a checkout. result is ResultOK, ResultFailed or a short error class.
func (c *Collector) RecordCheckout(result string) {
	c.checkouts.WithLabelValues(result).Inc()
}

// RecordVerification counts a payment claim verification.
func (c *Collector) RecordVerification(result string) {
	c.verifications.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveDelivery(eventType string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultFailed
	}
	c.deliveries.WithLabelValues(eventType, result).Inc()
}

// Handler returns the scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
