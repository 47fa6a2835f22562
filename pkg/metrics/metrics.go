// Package metrics provides Prometheus metrics instrumentation for the client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks backend request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "resource", "status"},
	)

	// RequestsTotal tracks total backend requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_requests_total",
			Help: "Total backend requests",
		},
		[]string{"method", "resource", "status"},
	)

	// UploadsTotal tracks evidence uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_uploads_total",
			Help: "Evidence file uploads by outcome",
		},
		[]string{"outcome"},
	)

	// UploadBytesTotal tracks bytes sent in evidence uploads.
	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_upload_bytes_total",
			Help: "Bytes sent in evidence uploads",
		},
	)

	// AnalysisPollsTotal tracks status polls issued by the analysis poller.
	AnalysisPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_analysis_polls_total",
			Help: "Analysis status polls issued",
		},
		[]string{"status"},
	)

	// AnalysisRunsActive tracks analysis runs currently being polled.
	AnalysisRunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_analysis_runs_active",
			Help: "Analysis runs currently being polled",
		},
	)

	// ChatMessagesTotal tracks transcript messages by role.
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_chat_messages_total",
			Help: "Chat transcript messages by role",
		},
		[]string{"role"},
	)
)

// RecordRequest records metrics for one backend request.
func RecordRequest(method, resource, status string, duration float64) {
	RequestDuration.WithLabelValues(method, resource, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, resource, status).Inc()
}

// RecordUpload records the outcome of one evidence upload attempt.
func RecordUpload(outcome string, bytes int64) {
	UploadsTotal.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		UploadBytesTotal.Add(float64(bytes))
	}
}
