package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "donation_platform",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_platform",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "donation_platform",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_platform",
			Name:      "logins_total",
			Help:      "Wallet logins by result (created, existing, disabled, error).",
		},
		[]string{"result"},
	)

	filesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "donation_platform",
			Name:      "files_uploaded_total",
			Help:      "Files stored through the upload endpoint.",
		},
	)

	donationAggregations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation_platform",
			Name:      "donation_aggregations_total",
			Help:      "Campaign total recalculations by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		logins,
		filesUploaded,
		donationAggregations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies per route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordLogin counts a login attempt outcome
func RecordLogin(result string) {
	logins.WithLabelValues(result).Inc()
}

// RecordUpload counts a stored file
func RecordUpload() {
	filesUploaded.Inc()
}

// RecordAggregation counts a campaign total recalculation
func RecordAggregation(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	donationAggregations.WithLabelValues(result).Inc()
}
