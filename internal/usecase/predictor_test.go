package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"fraudscore/internal/domain/models"
	applogger "fraudscore/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordPrediction(string) {}
func (noopMetrics) RecordProbability(float64) {}
func (noopMetrics) RecordScoringLatency(float64) {}
func (noopMetrics) RecordError(string) {}
func (noopMetrics) SetModelLoaded(bool) {}

// stubHost scores with a fixed linear function so expected probabilities can
// be computed independently in the tests.
type stubHost struct {
	loaded     bool
	weights    []float64
	bias       float64
	mean       []float64
	std        []float64
	scoreCalls int
	lastVector []float64
}

func (h *stubHost) Loaded() bool { return h.loaded }

func (h *stubHost) Score(vec []float64) (float64, error) {
	h.scoreCalls++
	h.lastVector = append([]float64(nil), vec...)
	logit := h.bias
	for i, w := range h.weights {
		logit += w * vec[i]
	}
	return logit, nil
}

func (h *stubHost) Params() (mean, std []float64) { return h.mean, h.std }

func identityHost(weights []float64, bias float64) *stubHost {
	return &stubHost{
		loaded:  true,
		weights: weights,
		bias:    bias,
		mean:    make([]float64, models.FeatureCount),
		std:     []float64{1, 1, 1, 1},
	}
}

func newTestLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestPredictComputesSigmoidProbability(t *testing.T) {
	host := identityHost([]float64{0.002, 0.05, 1.2, 0.1}, -1.5)
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	features := models.TransactionFeatures{Amount: 500.0, TimeOfDay: 14, Mismatch: 1, Frequency: 3}
	res, err := s.Predict(context.Background(), features)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	logit := 0.002*500.0 + 0.05*14 + 1.2*1 + 0.1*3 - 1.5
	want := 1 / (1 + math.Exp(-logit))
	if math.Abs(res.Probability-want) > 1e-12 {
		t.Fatalf("expected probability %v, got %v", want, res.Probability)
	}
	if res.IsFraudulent != (want > 0.5) {
		t.Fatalf("decision %v inconsistent with probability %v", res.IsFraudulent, res.Probability)
	}
}

func TestPredictDeterministic(t *testing.T) {
	host := identityHost([]float64{0.01, -0.2, 1.5, 0.3}, -2.0)
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	features := models.TransactionFeatures{Amount: 120.5, TimeOfDay: 3, Mismatch: 0, Frequency: 7}
	first, err := s.Predict(context.Background(), features)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := s.Predict(context.Background(), features)
		if err != nil {
			t.Fatalf("predict %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("call %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestPredictIdentityNormalization(t *testing.T) {
	// With the placeholder parameters (mean=0, std=1) the model must see
	// the raw feature vector in contract order.
	host := identityHost([]float64{1, 1, 1, 1}, 0)
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	features := models.TransactionFeatures{Amount: 500.0, TimeOfDay: 14, Mismatch: 1, Frequency: 3}
	if _, err := s.Predict(context.Background(), features); err != nil {
		t.Fatalf("predict: %v", err)
	}

	want := []float64{500.0, 14, 1, 3}
	if len(host.lastVector) != len(want) {
		t.Fatalf("unexpected vector length %d", len(host.lastVector))
	}
	for i := range want {
		if host.lastVector[i] != want[i] {
			t.Fatalf("vector[%d] = %v, want %v", i, host.lastVector[i], want[i])
		}
	}
}

func TestPredictAppliesNormalization(t *testing.T) {
	host := identityHost([]float64{1, 0, 0, 0}, 0)
	host.mean = []float64{100, 12, 0, 5}
	host.std = []float64{50, 6, 1, 2}
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	features := models.TransactionFeatures{Amount: 200, TimeOfDay: 18, Mismatch: 1, Frequency: 9}
	if _, err := s.Predict(context.Background(), features); err != nil {
		t.Fatalf("predict: %v", err)
	}

	want := []float64{(200.0 - 100) / 50, (18.0 - 12) / 6, 1, (9.0 - 5) / 2}
	for i := range want {
		if math.Abs(host.lastVector[i]-want[i]) > 1e-12 {
			t.Fatalf("normalized[%d] = %v, want %v", i, host.lastVector[i], want[i])
		}
	}
}

func TestPredictThresholdBoundary(t *testing.T) {
	// Zero logit gives exactly 0.5; the strict > threshold must not fire.
	host := identityHost([]float64{0, 0, 0, 0}, 0)
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	res, err := s.Predict(context.Background(), models.TransactionFeatures{Amount: 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Probability != 0.5 {
		t.Fatalf("expected probability 0.5, got %v", res.Probability)
	}
	if res.IsFraudulent {
		t.Fatalf("probability exactly 0.5 must not be flagged fraudulent")
	}
}

func TestPredictExtremeLogitsStayInOpenInterval(t *testing.T) {
	for _, bias := range []float64{1e6, -1e6} {
		host := identityHost([]float64{0, 0, 0, 0}, bias)
		s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

		res, err := s.Predict(context.Background(), models.TransactionFeatures{})
		if err != nil {
			t.Fatalf("predict with bias %v: %v", bias, err)
		}
		if !(res.Probability > 0 && res.Probability < 1) {
			t.Fatalf("probability %v for logit %v escapes (0,1)", res.Probability, bias)
		}
		if math.IsNaN(res.Probability) {
			t.Fatalf("probability is NaN for logit %v", bias)
		}
	}
}

func TestPredictModelUnavailable(t *testing.T) {
	host := identityHost([]float64{1, 1, 1, 1}, 0)
	host.loaded = false
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	_, err := s.Predict(context.Background(), models.TransactionFeatures{Amount: 10})
	if !errors.Is(err, models.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if host.scoreCalls != 0 {
		t.Fatalf("scoring must not be attempted while model is absent")
	}
}

func TestPredictRejectsNonFiniteFeatures(t *testing.T) {
	host := identityHost([]float64{1, 1, 1, 1}, 0)
	s := NewFraudScorer(host, noopMetrics{}, newTestLogger(t))

	_, err := s.Predict(context.Background(), models.TransactionFeatures{Amount: math.NaN()})
	if !errors.Is(err, models.ErrInvalidFeatures) {
		t.Fatalf("expected ErrInvalidFeatures, got %v", err)
	}
	if host.scoreCalls != 0 {
		t.Fatalf("scoring must not run on non-finite input")
	}
}

func TestSigmoidStable(t *testing.T) {
	cases := []float64{-1e9, -40, -1, 0, 1, 40, 1e9}
	for _, x := range cases {
		p := sigmoid(x)
		if !(p > 0 && p < 1) {
			t.Fatalf("sigmoid(%v) = %v escapes (0,1)", x, p)
		}
	}
	if sigmoid(0) != 0.5 {
		t.Fatalf("sigmoid(0) = %v, want 0.5", sigmoid(0))
	}
	if sigmoid(2) <= sigmoid(-2) {
		t.Fatalf("sigmoid must be monotonic")
	}
}
