package repository

// Metrics records domain-level observability signals.
type Metrics interface {
	RecordPrediction(decision string)
	RecordProbability(p float64)
	RecordScoringLatency(seconds float64)
	RecordError(kind string)
	SetModelLoaded(loaded bool)
}
