package service

// ModelHost exposes the loaded scoring artifact to the prediction path.
// Implementations must be safe for concurrent use: the held model is
// write-once at startup and read-only afterwards.
type ModelHost interface {
	// Loaded reports whether a scoring model is currently held.
	Loaded() bool
	// Score runs a forward pass over a normalized feature vector and
	// returns the raw logit.
	Score(vec []float64) (float64, error)
	// Params returns the normalization parameters paired with the model.
	// Both slices have length models.FeatureCount; std components are
	// guaranteed non-zero.
	Params() (mean, std []float64)
}
