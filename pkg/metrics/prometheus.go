package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	probability prometheus.Histogram
	latency     prometheus.Histogram
	modelLoaded prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fraudscore_predictions_total",
				Help: "Total number of predictions served, by decision",
			},
			[]string{"decision"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fraudscore_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		probability: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fraudscore_prediction_probability",
				Help:    "Distribution of predicted fraud probabilities",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		latency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fraudscore_scoring_duration_seconds",
				Help:    "Duration of model scoring in seconds",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
		),
		modelLoaded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "fraudscore_model_loaded",
				Help: "Whether a scoring model is currently loaded (1) or absent (0)",
			},
		),
	}
}

// RecordPrediction records one served prediction by decision label.
func (r *Recorder) RecordPrediction(decision string) {
	r.predictions.WithLabelValues(decision).Inc()
}

// RecordProbability records a predicted probability.
func (r *Recorder) RecordProbability(p float64) {
	r.probability.Observe(p)
}

// RecordScoringLatency records scoring duration in seconds.
func (r *Recorder) RecordScoringLatency(seconds float64) {
	r.latency.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// SetModelLoaded flips the model availability gauge.
func (r *Recorder) SetModelLoaded(loaded bool) {
	if loaded {
		r.modelLoaded.Set(1)
		return
	}
	r.modelLoaded.Set(0)
}
