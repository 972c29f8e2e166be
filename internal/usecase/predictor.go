package usecase

import (
	"context"
	"math"
	"time"

	"fraudscore/internal/domain/models"
	"fraudscore/internal/domain/repository"
	domsvc "fraudscore/internal/domain/service"
	applogger "fraudscore/pkg/logger"
)

// decisionThreshold is the fixed probability cutoff for the fraud decision.
// Not configurable at request time.
const decisionThreshold = 0.5

// maxLogit clamps raw model output before the sigmoid. Keeps the exponential
// from overflowing and the resulting probability strictly inside (0, 1).
const maxLogit = 30.0

// FraudScorer is the stateless per-request prediction path: availability
// precondition, normalization, forward pass, sigmoid, thresholding.
type FraudScorer struct {
	host    domsvc.ModelHost
	metrics repository.Metrics
	logger  *applogger.Logger
}

func NewFraudScorer(host domsvc.ModelHost, metrics repository.Metrics, logger *applogger.Logger) *FraudScorer {
	return &FraudScorer{host: host, metrics: metrics, logger: logger}
}

// Available reports whether the scoring model is loaded.
func (s *FraudScorer) Available() bool {
	return s.host.Loaded()
}

// Predict scores one transaction. The computation is pure and deterministic:
// same features against the same loaded model yield the same probability.
func (s *FraudScorer) Predict(ctx context.Context, f models.TransactionFeatures) (models.PredictionResponse, error) {
	if !s.host.Loaded() {
		s.metrics.RecordError("model_unavailable")
		return models.PredictionResponse{}, models.ErrModelUnavailable
	}

	vec := f.Vector()
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.metrics.RecordError("invalid_features")
			s.logger.Warn("rejecting non-finite feature", applogger.Int("index", i))
			return models.PredictionResponse{}, models.ErrInvalidFeatures
		}
	}

	start := time.Now()

	mean, std := s.host.Params()
	norm := normalize(vec, mean, std)

	logit, err := s.host.Score(norm)
	if err != nil {
		s.metrics.RecordError("scoring")
		return models.PredictionResponse{}, err
	}

	probability := sigmoid(logit)
	isFraudulent := probability > decisionThreshold

	s.metrics.RecordScoringLatency(time.Since(start).Seconds())
	s.metrics.RecordProbability(probability)
	if isFraudulent {
		s.metrics.RecordPrediction("fraud")
	} else {
		s.metrics.RecordPrediction("legit")
	}

	s.logger.Debug("transaction scored",
		applogger.Float64("logit", logit),
		applogger.Float64("probability", probability),
		applogger.Bool("is_fraudulent", isFraudulent))

	return models.PredictionResponse{
		Probability:  probability,
		IsFraudulent: isFraudulent,
	}, nil
}

// normalize rescales a raw feature vector elementwise: (v - mean) / std.
func normalize(vec, mean, std []float64) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = (v - mean[i]) / std[i]
	}
	return out
}

// sigmoid maps a logit into (0, 1). Split form avoids overflow for large
// negative inputs; the clamp keeps the result away from exactly 0 and 1.
func sigmoid(x float64) float64 {
	if x > maxLogit {
		x = maxLogit
	} else if x < -maxLogit {
		x = -maxLogit
	}
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
