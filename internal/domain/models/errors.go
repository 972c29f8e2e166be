package models

import "errors"

var (
	// ErrModelUnavailable is returned when a prediction arrives while no
	// model is loaded. Mapped to HTTP 503 at the handler boundary.
	ErrModelUnavailable = errors.New("model is not loaded")

	// ErrInvalidFeatures is returned for malformed numeric input (NaN/Inf)
	// that survived schema validation. Mapped to HTTP 400.
	ErrInvalidFeatures = errors.New("invalid feature values")
)
