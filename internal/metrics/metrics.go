// Package metrics exposes Prometheus collectors for the HTTP layer and the
// lending ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LoansIssuedTotal counts successfully issued loans.
	LoansIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loans_issued_total",
		Help: "Total book loans issued.",
	})

	// LoansReturnedTotal counts successful return mutations.
	LoansReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loans_returned_total",
		Help: "Total book loans marked returned.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
