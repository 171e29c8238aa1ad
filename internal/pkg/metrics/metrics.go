package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policeapp_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)

// Domain metrics
var (
	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policeapp_auth_events_total",
			Help: "Authentication workflow events by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	ViolationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policeapp_violations_created_total",
			Help: "Violation records filed",
		},
	)

	AudioSyncFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policeapp_audio_sync_files_total",
			Help: "Files handled by the audio sync job by outcome",
		},
		[]string{"outcome"},
	)
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// RecordAuth increments the auth event counter
func RecordAuth(event string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	AuthEvents.WithLabelValues(event, outcome).Inc()
}
