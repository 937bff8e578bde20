package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "aestheticmarket"

// HTTPMetrics records request counts and latencies per route pattern.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ProductMetrics counts product mutations by operation and outcome.
type ProductMetrics struct {
	mutations *prometheus.CounterVec
}

// NewProductMetrics registers the product mutation counter on the provided registerer.
func NewProductMetrics(reg prometheus.Registerer) *ProductMetrics {
	if reg == nil {
		return &ProductMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Product create, update and delete attempts by outcome.",
	}, []string{"op", "outcome"})
	reg.MustRegister(mutations)
	return &ProductMetrics{mutations: mutations}
}

// Record increments the counter for op with the given outcome label.
func (m *ProductMetrics) Record(op, outcome string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// RegisterDBStats exports database/sql pool statistics.
func RegisterDBStats(reg prometheus.Registerer, db *sql.DB, name string) error {
	if reg == nil || db == nil {
		return nil
	}
	return reg.Register(collectors.NewDBStatsCollector(db, normalizeLabel(name)))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
