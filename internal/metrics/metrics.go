// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_analyses_total",
			Help: "Total number of completed project analyses",
		},
		[]string{"complexity", "viability"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_generation_failures_total",
			Help: "Total number of failed proposal generations",
		},
		[]string{"kind"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "proposal_analysis_duration_seconds",
			Help:    "Duration of project analyses in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	AccessDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_access_denied_total",
			Help: "Total number of analyses refused by the entitlement check",
		},
		[]string{"reason"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "proposal_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
)

// ViabilityLabel collapses parameterized verdicts into a bounded label set.
func ViabilityLabel(inviable bool) string {
	if inviable {
		return "inviable"
	}
	return "viable"
}
