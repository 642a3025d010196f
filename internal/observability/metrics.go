package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	evaluationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "form",
		Name:      "evaluations_total",
		Help:      "Page evaluations grouped by outcome.",
	}, []string{"outcome"})

	submissionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "form",
		Name:      "submissions_total",
		Help:      "Run submissions grouped by result.",
	}, []string{"result"})

	storeOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "performace",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Latency of tabular store calls.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"op", "status"})

	schemaResetCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "store",
		Name:      "schema_resets_total",
		Help:      "Times the store was cleared because its header row did not match.",
	})

	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "performace",
		Subsystem: "form",
		Name:      "last_run_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent run appended to the store.",
	})

	lastPaceGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "performace",
		Subsystem: "form",
		Name:      "last_pace_seconds_per_km",
		Help:      "Pace of the most recent run in seconds per kilometre.",
	})

	eventsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performace",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "run.recorded events grouped by topic and status.",
	}, []string{"topic", "status"})
)

func init() {
	prometheus.MustRegister(evaluationCounter, submissionCounter, storeOpDuration, schemaResetCounter, lastRunGauge, lastPaceGauge, eventsCounter)
}

// RecordEvaluation counts one page evaluation.
func RecordEvaluation(outcome string) {
	evaluationCounter.WithLabelValues(outcome).Inc()
}

// RecordSubmission counts one submission result.
func RecordSubmission(result string) {
	submissionCounter.WithLabelValues(result).Inc()
}

// ObserveStoreOp records the latency of a store call started at start.
func ObserveStoreOp(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

// RecordSchemaReset counts a destructive header repair.
func RecordSchemaReset() {
	schemaResetCounter.Inc()
}

// RecordRunRecorded updates the last-run watermark and pace gauges.
func RecordRunRecorded(ts time.Time, paceSeconds float64) {
	if ts.IsZero() {
		return
	}
	lastRunGauge.Set(float64(ts.Unix()))
	lastPaceGauge.Set(paceSeconds)
}

// RecordEventPublished counts a delivered event.
func RecordEventPublished(topic string) {
	eventsCounter.WithLabelValues(topic, "ok").Inc()
}

// RecordEventFailed counts an event that could not be delivered.
func RecordEventFailed(topic string) {
	eventsCounter.WithLabelValues(topic, "error").Inc()
}
