// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for PredictionsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the collectors of a single invocation. The process exits
// after one prediction, so nothing is scraped: the registry is flushed to a
// node_exporter textfile instead.
type Recorder struct {
	registry *prometheus.Registry

	PredictionsTotal   *prometheus.CounterVec
	PredictionFailures *prometheus.CounterVec
	PredictionDuration prometheus.Histogram
	PredictionValue    prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictions_total",
				Help: "Total number of prediction invocations by outcome",
			},
			[]string{"outcome"},
		),
		PredictionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prediction_failures_total",
				Help: "Total number of failed predictions by error code",
			},
			[]string{"error_code"},
		),
		PredictionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prediction_duration_seconds",
				Help:    "Wall time of one prediction from decode to inverse transform",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		PredictionValue: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "prediction_price",
				Help: "Price produced by the last successful prediction",
			},
		),
	}
}

// Registry exposes the underlying registry so other exporters can share it.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordSuccess(price float64, elapsed time.Duration) {
	r.PredictionsTotal.WithLabelValues(OutcomeSuccess).Inc()
	r.PredictionDuration.Observe(elapsed.Seconds())
	r.PredictionValue.Set(price)
}

// RecordFailure implements errors.FailureRecorder.
func (r *Recorder) RecordFailure(code string) {
	r.PredictionsTotal.WithLabelValues(OutcomeFailure).Inc()
	r.PredictionFailures.WithLabelValues(code).Inc()
}

// WriteTextfile atomically writes every registered metric to path in the
// Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
