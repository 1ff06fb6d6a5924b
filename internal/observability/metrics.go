package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plan_service",
		Subsystem: "generation",
		Name:      "plans_total",
		Help:      "Plans returned to callers, by the synthesizer that produced them.",
	}, []string{"source"})
	remoteFailuresCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plan_service",
		Subsystem: "generation",
		Name:      "remote_failures_total",
		Help:      "Requests that fell back to the local synthesizer, by reason.",
	}, []string{"reason"})
	remoteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "plan_service",
		Subsystem: "generation",
		Name:      "remote_latency_seconds",
		Help:      "Round-trip time of the outbound model call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
	})
	archiveFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plan_service",
		Subsystem: "archive",
		Name:      "failures_total",
		Help:      "Generated plans that could not be archived.",
	})
)

// Remote failure reasons.
const (
	ReasonInvalidInput = "invalid_input"
	ReasonDisabled     = "disabled"
	ReasonTimeout      = "timeout"
	ReasonUpstream     = "upstream_status"
	ReasonContract     = "contract"
	ReasonTransport    = "transport"
)

func init() {
	prometheus.MustRegister(generationsCounter, remoteFailuresCounter, remoteLatency, archiveFailuresCounter)
}

// RecordGeneration counts one emitted plan.
func RecordGeneration(source string) {
	generationsCounter.WithLabelValues(source).Inc()
}

// RecordRemoteFailure counts one fallback, labelled with why it happened.
func RecordRemoteFailure(reason string) {
	remoteFailuresCounter.WithLabelValues(reason).Inc()
}

// ObserveRemoteLatency records the duration of one outbound call.
func ObserveRemoteLatency(d time.Duration) {
	if d <= 0 {
		return
	}
	remoteLatency.Observe(d.Seconds())
}

// RecordArchiveFailure counts one failed archive write.
func RecordArchiveFailure() {
	archiveFailuresCounter.Inc()
}
