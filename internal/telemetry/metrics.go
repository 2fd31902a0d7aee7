// Package telemetry holds the Prometheus collectors served on /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Results for AuditRecordsTotal.
const (
	AuditResultRecorded   = "recorded"
	AuditResultSuppressed = "suppressed"
	AuditResultFailed     = "failed"
)

var (
	// AuditRecordsTotal counts audit write attempts by outcome. A rising
	// "failed" series means mutations are committing without a trail.
	AuditRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_records_total",
			Help: "Audit record write attempts, by result (recorded, suppressed, failed).",
		},
		[]string{"result"},
	)

	// HTTPRequestsTotal is labelled by route template, not raw URL.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)
