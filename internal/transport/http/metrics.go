package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	summaryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoppulse_summary_requests_total",
		Help: "Executive summary requests by HTTP status",
	}, []string{"status"})

	summaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shoppulse_summary_duration_seconds",
		Help:    "Executive summary computation latency",
		Buckets: prometheus.DefBuckets,
	})
)

// observeSummary records one summary request outcome
func observeSummary(status int, duration time.Duration) {
	summaryRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	summaryDuration.Observe(duration.Seconds())
}

// MetricsHandler exposes the prometheus scrape endpoint
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
