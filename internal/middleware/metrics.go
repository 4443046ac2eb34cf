package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	authRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Total number of requests rejected with 401",
		},
	)
)

// RegisterMetrics registers the request metrics with the default
// registry. Call once from main before serving.
func RegisterMetrics() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(authRejections)
}

// Metrics returns a middleware that records a counter and a duration
// histogram per request.
//
// Labels use the routing pattern, not the raw path — /habits/Run and
// /habits/Walk are one series, not two. The pattern function is injected
// so this package stays router-agnostic.
func Metrics(pattern func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			path := pattern(r)
			httpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
			httpRequestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())

			if wrapped.statusCode == http.StatusUnauthorized {
				authRejections.Inc()
			}
		})
	}
}
