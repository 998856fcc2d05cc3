package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records pipeline metrics with Prometheus.
type Recorder struct {
	eventsTotal   *prometheus.CounterVec
	tasksTotal    *prometheus.CounterVec
	dispatchTotal *prometheus.CounterVec
	scoreTotal    *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a recorder registered on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		eventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bias_ingest_events_total",
				Help: "Events seen by intake, by outcome (accepted, duplicate, rejected)",
			},
			[]string{"outcome"},
		),
		tasksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bias_tasks_processed_total",
				Help: "Asynchronous tasks processed by the worker, by stream and status",
			},
			[]string{"stream", "status"},
		),
		dispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bias_tasks_dispatched_total",
				Help: "Tasks handed to the queue, by stream and result",
			},
			[]string{"stream", "result"},
		),
		scoreTotal: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bias_score_total",
				Help: "Latest clamped bias score per asset",
			},
			[]string{"asset_id"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bias_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvent records one intake outcome.
func (r *Recorder) RecordEvent(outcome string) {
	if r == nil {
		return
	}
	r.eventsTotal.WithLabelValues(outcome).Inc()
}

// RecordTask records a processed task.
func (r *Recorder) RecordTask(stream, status string) {
	if r == nil {
		return
	}
	r.tasksTotal.WithLabelValues(stream, status).Inc()
}

// RecordDispatch records a dispatch attempt.
func (r *Recorder) RecordDispatch(stream, result string) {
	if r == nil {
		return
	}
	r.dispatchTotal.WithLabelValues(stream, result).Inc()
}

// RecordScore records the latest score for an asset.
func (r *Recorder) RecordScore(assetID string, total int) {
	if r == nil {
		return
	}
	r.scoreTotal.WithLabelValues(assetID).Set(float64(total))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(op).Observe(seconds)
}
