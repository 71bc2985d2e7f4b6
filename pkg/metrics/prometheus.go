package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	eventsTotal     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	sectionFailures *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		eventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streampulse_overlay_events_total",
				Help: "Total overlay events received from the push channel",
			},
			[]string{"channel", "kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streampulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		sectionFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streampulse_section_failures_total",
				Help: "Dashboard sections degraded to empty after a failed sub-fetch",
			},
			[]string{"screen", "section"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "streampulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvent records an overlay event received on a channel.
func (r *Recorder) RecordEvent(channel, kind string) {
	r.eventsTotal.WithLabelValues(channel, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSectionFailure records a dashboard section degraded to empty state.
func (r *Recorder) RecordSectionFailure(screen, section string) {
	r.sectionFailures.WithLabelValues(screen, section).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
