package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Model type tags recorded on every prediction.
const (
	ModelTypePriceOptimization = "price_optimization"
	ModelTypeOccupancyForecast = "occupancy_forecast"
	ModelTypePaymentPrediction = "payment_prediction"
	ModelTypeRiskAssessment    = "risk_assessment"
)

// AIModelPrediction is the immutable audit record of one scoring invocation.
type AIModelPrediction struct {
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	InputData        json.RawMessage `db:"input_data" json:"input_data"`
	PredictionResult json.RawMessage `db:"prediction_result" json:"prediction_result"`
	ModelType        string          `db:"model_type" json:"model_type"`
	ConfidenceScore  float64         `db:"confidence_score" json:"confidence_score"`
	ID               uuid.UUID       `db:"id" json:"id"`
}

// PredictionFilter narrows the prediction log.
type PredictionFilter struct {
	ModelType string
	Limit     int
}
