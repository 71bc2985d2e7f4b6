package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AssemblyLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "streampulse",
			Subsystem: "dashboard",
			Name:      "assembly_seconds",
			Help:      "Latency of view-model assembly per screen",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"screen"},
	)

	AssemblyErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "streampulse",
			Subsystem: "dashboard",
			Name:      "errors_total",
			Help:      "Errors by dashboard screen",
		},
		[]string{"screen"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(AssemblyLatency, AssemblyErrors)
	})
}
