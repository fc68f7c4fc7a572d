// Package telemetry registers the service's Prometheus metrics against the
// default registry. main.go serves them on a side HTTP server at /metrics so
// they stay off the public API router.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkflowDecisionsTotal counts admin decisions by entity kind
	// ("club" or "membership_request"), decision, and outcome ("ok"/"error").
	WorkflowDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_decisions_total",
			Help: "Admin decisions on pending entities.",
		},
		[]string{"entity", "decision", "outcome"},
	)

	ClubSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "club_submissions_total",
			Help: "Clubs submitted for approval.",
		},
	)

	MembershipRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "membership_requests_total",
			Help: "Membership requests submitted.",
		},
	)

	// HTTP metrics use the mux route template rather than the raw URL to
	// keep label cardinality bounded.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route template, and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	CacheRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projection_cache_refreshes_total",
			Help: "ClientCache mirror refreshes by trigger (scheduled, conflict, manual).",
		},
		[]string{"trigger"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments a mux router with request counts and latency.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
