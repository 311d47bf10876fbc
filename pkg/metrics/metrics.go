// Package metrics provides Prometheus metrics for the residual pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks inbound HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "residual_hub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// UploadsTotal tracks processor file uploads by processor and outcome
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "pipeline",
			Name:      "uploads_total",
			Help:      "Total number of processor uploads by processor and outcome",
		},
		[]string{"processor", "outcome"},
	)

	// RowsRejected tracks rows dropped during normalization
	RowsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "pipeline",
			Name:      "rows_rejected_total",
			Help:      "Total number of rows dropped during normalization",
		},
		[]string{"processor"},
	)

	// AssignmentsResolved tracks assignment rows written per resolution run
	AssignmentsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "pipeline",
			Name:      "assignments_resolved_total",
			Help:      "Total number of assignment rows resolved",
		},
	)

	// AuditIssuesFound tracks audit issues raised by type
	AuditIssuesFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "audit",
			Name:      "issues_found_total",
			Help:      "Total number of audit issues raised by type",
		},
		[]string{"type"},
	)

	// AuditRunDuration tracks audit run duration in seconds
	AuditRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "residual_hub",
			Subsystem: "audit",
			Name:      "run_duration_seconds",
			Help:      "Duration of audit runs in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// ReportCacheHits tracks report cache lookups by result
	ReportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "residual_hub",
			Subsystem: "reports",
			Name:      "cache_lookups_total",
			Help:      "Total number of report cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordUpload records an upload attempt and its outcome
func RecordUpload(processor, outcome string, rejectedRows int) {
	UploadsTotal.WithLabelValues(processor, outcome).Inc()
	if rejectedRows > 0 {
		RowsRejected.WithLabelValues(processor).Add(float64(rejectedRows))
	}
}

// RecordAuditRun records the findings of one audit run
func RecordAuditRun(issuesByType map[string]int, durationSeconds float64) {
	for issueType, count := range issuesByType {
		AuditIssuesFound.WithLabelValues(issueType).Add(float64(count))
	}
	AuditRunDuration.Observe(durationSeconds)
}

// RecordReportCacheLookup records a report cache hit or miss
func RecordReportCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReportCacheHits.WithLabelValues(result).Inc()
}
