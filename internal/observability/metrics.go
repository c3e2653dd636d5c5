package observability

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-chi/chi/v5"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripshare_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripshare_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// GroupsReaped counts expired groups removed by the reaper.
	GroupsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripshare_groups_reaped_total",
		Help: "Total number of expired groups deleted by the reaper.",
	})
	// ReaperErrors counts non-fatal failures inside reaper runs.
	ReaperErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripshare_reaper_errors_total",
		Help: "Total number of errors encountered by the reaper.",
	})
	// WarningsEmitted counts expiry warnings actually recorded.
	WarningsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripshare_expiry_warnings_total",
		Help: "Total number of expiry warnings emitted.",
	})
)

// HTTPMetrics records request counts and latencies per chi route.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
