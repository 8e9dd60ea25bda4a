package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "textile_erp"

// Posting outcomes recorded by the journal service.
const (
	OutcomePosted    = "posted"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeReversed  = "reversed"
	OutcomeConflicts = "conflict"
)

// HTTPRequestDuration tracks request latency by route template, method and status.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// JournalPostings counts journal entry posting attempts by voucher type and outcome.
var JournalPostings = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "postings_total",
	Help:      "Journal entry posting attempts by voucher type and outcome.",
}, []string{"voucher_type", "outcome"})

// VoucherRetries counts postings retried after a voucher number collision.
var VoucherRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "voucher_retries_total",
	Help:      "Postings retried after a voucher number collision.",
}, []string{"voucher_type"})

// AuditFailures counts audit records that could not be written.
var AuditFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "audit",
	Name:      "write_failures_total",
	Help:      "Audit log rows that failed to persist.",
})

// GinMiddleware observes HTTP request durations using the matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
