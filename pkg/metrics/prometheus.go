package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.service.Metrics using Prometheus.
type Recorder struct {
	evaluations *prometheus.CounterVec
	composite   *prometheus.GaugeVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimepulse_evaluations_total",
				Help: "Total regime evaluations by symbol and resulting label",
			},
			[]string{"symbol", "label"},
		),
		composite: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "regimepulse_composite_score",
				Help: "Last composite score per symbol",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimepulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regimepulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvaluation counts one finished evaluation.
func (r *Recorder) RecordEvaluation(symbol, label string) {
	r.evaluations.WithLabelValues(symbol, label).Inc()
}

// RecordComposite records the latest composite score for a symbol.
func (r *Recorder) RecordComposite(symbol string, composite float64) {
	r.composite.WithLabelValues(symbol).Set(composite)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
