package model

import (
	"errors"
	"fmt"
	"sync"

	"fraudscore/internal/domain/models"
	"fraudscore/internal/domain/repository"
	applogger "fraudscore/pkg/logger"
)

// Host owns the scoring artifact and its normalization parameters for the
// process lifetime. State is written twice: once at Initialize and once at
// Shutdown; everything in between is reads, guarded by an RWMutex.
type Host struct {
	mu      sync.RWMutex
	net     *Network
	mean    []float64
	std     []float64
	path    string
	logger  *applogger.Logger
	metrics repository.Metrics
}

func NewHost(path string, logger *applogger.Logger, metrics repository.Metrics) *Host {
	return &Host{
		path:    path,
		logger:  logger,
		metrics: metrics,
	}
}

// Initialize loads the artifact and the normalization parameters. Load
// failures never propagate: the host degrades to "absent" and the service
// keeps starting, answering predictions with a 503.
func (h *Host) Initialize() {
	// Placeholder mean and std; a production variant loads these from
	// artifacts saved during training.
	mean, std, err := newNormalization(
		make([]float64, models.FeatureCount),
		[]float64{1, 1, 1, 1},
	)
	if err != nil {
		// Unreachable with the placeholder values; guards future loaders.
		h.logger.Error("invalid normalization parameters", applogger.Error(err))
		return
	}

	h.mu.Lock()
	h.mean = mean
	h.std = std
	h.mu.Unlock()

	net, err := LoadNetwork(h.path)
	if err != nil {
		switch {
		case errors.Is(err, ErrArtifactMissing):
			h.logger.Warn("model artifact not found, predictions will return 503",
				applogger.String("path", h.path))
			h.metrics.RecordError("artifact_missing")
		default:
			h.logger.Error("model artifact failed to load",
				applogger.String("path", h.path), applogger.Error(err))
			h.metrics.RecordError("artifact_load")
		}
		h.metrics.SetModelLoaded(false)
		return
	}

	h.mu.Lock()
	h.net = net
	h.mu.Unlock()

	h.metrics.SetModelLoaded(true)
	h.logger.Info("model loaded",
		applogger.String("path", h.path),
		applogger.Int("layers", len(net.Layers)))
}

// Shutdown releases the model reference.
func (h *Host) Shutdown() {
	h.mu.Lock()
	h.net = nil
	h.mu.Unlock()

	h.metrics.SetModelLoaded(false)
	h.logger.Info("model released")
}

// Loaded reports whether a scoring model is currently held.
func (h *Host) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.net != nil
}

// Score runs a forward pass over a normalized feature vector and returns
// the raw logit.
func (h *Host) Score(vec []float64) (float64, error) {
	h.mu.RLock()
	net := h.net
	h.mu.RUnlock()

	if net == nil {
		return 0, models.ErrModelUnavailable
	}
	return net.Forward(vec)
}

// Params returns the normalization parameters paired with the model.
func (h *Host) Params() (mean, std []float64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mean, h.std
}

// newNormalization validates mean/std vectors: matching fixed length and
// non-zero std components (division safety).
func newNormalization(mean, std []float64) ([]float64, []float64, error) {
	if len(mean) != models.FeatureCount || len(std) != models.FeatureCount {
		return nil, nil, fmt.Errorf("normalization vectors must have length %d", models.FeatureCount)
	}
	for i, s := range std {
		if s == 0 {
			return nil, nil, fmt.Errorf("std[%d] must be non-zero", i)
		}
	}
	return mean, std, nil
}
