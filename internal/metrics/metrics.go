// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intima_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_ledger_operations_total",
		Help: "Ledger operations, labeled by operation and outcome",
	}, []string{"operation", "outcome"})

	LedgerCredits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_ledger_credits_total",
		Help: "Absolute credits moved by committed ledger entries, labeled by reason",
	}, []string{"reason"})

	Pairings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_pairings_total",
		Help: "Invite code redemptions, labeled by outcome",
	}, []string{"outcome"})

	ConsentChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_consent_changes_total",
		Help: "Consent grants and revocations, labeled by capability and action",
	}, []string{"capability", "action"})

	ConsentDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_consent_denials_total",
		Help: "Gated actions refused for lack of mutual consent",
	}, []string{"capability"})

	GenerateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_generate_requests_total",
		Help: "Generative text requests, labeled by outcome",
	}, []string{"outcome"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intima_notifications_total",
		Help: "Notification publishes, labeled by outcome",
	}, []string{"outcome"})
)

// Outcome turns an error into a low-cardinality label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "success"
}

// Middleware records request count and latency keyed by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
