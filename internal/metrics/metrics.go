package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hire_submissions_accepted_total",
		Help: "Total number of submissions persisted to the store.",
	})

	SubmissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hire_submissions_rejected_total",
		Help: "Total number of rejected submissions, labelled by reason.",
	}, []string{"reason"})

	DebugReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hire_debug_reads_total",
		Help: "Total number of sanitized debug sample reads.",
	})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hire_store_errors_total",
		Help: "Total number of store failures, labelled by operation.",
	}, []string{"operation"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hire_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds, labelled by route.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"route"})
)
