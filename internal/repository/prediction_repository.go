package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// PredictionRepository is the insert-only audit log of scoring invocations.
type PredictionRepository interface {
	// Create assigns an id when the record has none and appends it.
	Create(ctx context.Context, p *models.AIModelPrediction) error
	// List returns the most recent predictions first.
	List(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error)
}

type predictionRepository struct {
	db database.Querier
}

// NewPredictionRepository creates a PredictionRepository backed by the given pool.
func NewPredictionRepository(db database.Querier) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, p *models.AIModelPrediction) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO ai_model_predictions (id, model_type, input_data, prediction_result, confidence_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query, p.ID, p.ModelType, p.InputData, p.PredictionResult, p.ConfidenceScore).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert %s prediction: %w", p.ModelType, err)
	}
	return nil
}

func (r *predictionRepository) List(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error) {
	var c conditions
	if filter.ModelType != "" {
		c.add("model_type = ?", filter.ModelType)
	}
	query := `
		SELECT id, model_type, input_data, prediction_result, confidence_score, created_at
		FROM ai_model_predictions` + c.where() + ` ORDER BY created_at DESC` + c.page(filter.Limit, 0)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	results := []models.AIModelPrediction{}
	for rows.Next() {
		var p models.AIModelPrediction
		if err := rows.Scan(&p.ID, &p.ModelType, &p.InputData, &p.PredictionResult, &p.ConfidenceScore, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction rows: %w", err)
	}
	return results, nil
}
