package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP Requests",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "HTTP Request Duration",
	}, []string{"method", "endpoint"})

	httpRequestsInProgress = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_requests_in_progress",
		Help: "HTTP Requests In Progress",
	}, []string{"method", "endpoint"})

	rulesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_rules_evaluated_total",
		Help: "Automation rule evaluation outcomes",
	}, []string{"outcome"})
)

// Middleware records request count, duration, and in-progress gauges.
// The route template is used as the endpoint label so /api/parking/3
// and /api/parking/7 share a series.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method

		httpRequestsInProgress.WithLabelValues(method, endpoint).Inc()
		start := time.Now()

		c.Next()

		httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestsInProgress.WithLabelValues(method, endpoint).Dec()
	}
}

// Handler exposes the Prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// CountRuleOutcome tallies one rule evaluation outcome: applied or skipped
func CountRuleOutcome(outcome string) {
	rulesEvaluated.WithLabelValues(outcome).Inc()
}
