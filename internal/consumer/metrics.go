package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages reported on performace_mirror_failures_total.
const (
	stageDecode = "decode"
	stageMirror = "mirror"
)

var (
	committedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "mirror",
		Name:      "events_committed_total",
		Help:      "Run events mirrored (or skipped as foreign types) and committed, by event type.",
	}, []string{"event_type"})

	failureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "mirror",
		Name:      "failures_total",
		Help:      "Run events that could not be mirrored, by stage: decode (committed and dropped) or mirror (left for redelivery).",
	}, []string{"stage"})

	lastMirroredGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "performace",
		Subsystem: "mirror",
		Name:      "last_event_timestamp_seconds",
		Help:      "Kafka timestamp of the newest run event committed by the mirror.",
	})
)

func init() {
	prometheus.MustRegister(committedCounter, failureCounter, lastMirroredGauge)
}

func recordCommitted(msg Message) {
	committedCounter.WithLabelValues(msg.EventType).Inc()
	if !msg.Timestamp.IsZero() {
		lastMirroredGauge.Set(float64(msg.Timestamp.Unix()))
	}
}

func recordFailure(stage string) {
	failureCounter.WithLabelValues(stage).Inc()
}
