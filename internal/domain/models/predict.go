package models

// FeatureCount is the fixed width of the model input vector.
const FeatureCount = 4

// PredictRequest is the wire shape of POST /predict. Pointer fields let the
// binder distinguish "absent" from a legitimate zero value; all four are
// required and unknown fields are rejected at bind time.
type PredictRequest struct {
	Amount    *float64 `json:"amount" validate:"required"`
	TimeOfDay *int     `json:"time_of_day" validate:"required,gte=0,lte=23"`
	Mismatch  *int     `json:"mismatch" validate:"required,oneof=0 1"`
	Frequency *int     `json:"frequency" validate:"required,gte=0"`
}

// Features converts a validated request into domain features.
func (r *PredictRequest) Features() TransactionFeatures {
	return TransactionFeatures{
		Amount:    *r.Amount,
		TimeOfDay: *r.TimeOfDay,
		Mismatch:  *r.Mismatch,
		Frequency: *r.Frequency,
	}
}

// TransactionFeatures holds one transaction's scoring inputs.
type TransactionFeatures struct {
	Amount    float64
	TimeOfDay int
	Mismatch  int
	Frequency int
}

// Vector returns the features in the order the model was trained on:
// [amount, time_of_day, mismatch, frequency]. The order is part of the
// model contract and must not change.
func (f TransactionFeatures) Vector() []float64 {
	return []float64{f.Amount, float64(f.TimeOfDay), float64(f.Mismatch), float64(f.Frequency)}
}

// PredictionResponse is the wire shape of a successful prediction.
type PredictionResponse struct {
	Probability  float64 `json:"probability"`
	IsFraudulent bool    `json:"is_fraudulent"`
}

// HealthStatus reports service readiness.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
