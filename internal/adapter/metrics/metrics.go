// Package metrics exposes treasury and HTTP counters on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements ports.TreasuryMetrics.
type Metrics struct {
	registry    *prometheus.Registry
	withdrawals *prometheus.CounterVec
	withdrawn   *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	requests    *prometheus.CounterVec
	durations   *prometheus.HistogramVec
}

// New registers every collector under namespace ("payee_treasury" when empty).
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "payee_treasury"
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "treasury",
			Name:      "withdrawals_total",
			Help:      "Committed withdrawals segmented by kind (owner, payee).",
		}, []string{"kind"}),
		withdrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "treasury",
			Name:      "withdrawn_base_units_total",
			Help:      "Approximate sum of withdrawn amounts in base units. Float precision; use the event log for exact totals.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "treasury",
			Name:      "rejections_total",
			Help:      "Rejected treasury calls segmented by operation and error code.",
		}, []string{"operation", "code"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests segmented by route, method and status.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(m.withdrawals, m.withdrawn, m.rejections, m.requests, m.durations)
	return m
}

// ObserveWithdrawal records a committed withdrawal.
func (m *Metrics) ObserveWithdrawal(kind string, amount *uint256.Int) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(kind).Inc()
	if amount != nil {
		m.withdrawn.WithLabelValues(kind).Add(amount.Float64())
	}
}

// ObserveRejection records a rejected call. An empty code means the error
// was not an application error.
func (m *Metrics) ObserveRejection(operation string, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.rejections.WithLabelValues(operation, code).Inc()
}

// Middleware counts requests by matched route so path parameters do not
// explode label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.durations.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
