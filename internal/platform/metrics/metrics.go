// Package metrics holds the process prometheus collectors and the scrape handler
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckRuns counts finished check runs by terminal state
	CheckRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgcheck_runs_total",
			Help: "Total number of existence check runs by terminal state",
		},
		[]string{"state"},
	)

	// CheckBatches counts processed batches by outcome
	CheckBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgcheck_batches_total",
			Help: "Total number of contact import batches by outcome",
		},
		[]string{"outcome"},
	)

	// CheckNumbers counts classified phone numbers by comment
	CheckNumbers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgcheck_numbers_total",
			Help: "Total number of checked phone numbers by classification",
		},
		[]string{"outcome"},
	)

	// CheckBatchDuration observes import+classify+delete time per batch, delay excluded
	CheckBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tgcheck_batch_duration_seconds",
			Help:    "Duration of one contact import batch in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SessionEvents counts session lifecycle calls by operation and result
	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgcheck_session_events_total",
			Help: "Total number of session operations by operation and result",
		},
		[]string{"op", "result"},
	)

	// HTTPRequests counts served requests by chi route pattern, never by raw path
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgcheck_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request latency by route
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tgcheck_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .025, .1, .5, 1, 5, 30, 120},
		},
		[]string{"method", "route"},
	)
)

// Handler returns the scrape endpoint for the default registry
func Handler() http.Handler { return promhttp.Handler() }
