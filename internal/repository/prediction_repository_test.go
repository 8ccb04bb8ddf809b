package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Havertz69/rental-app/internal/models"
)

func TestPredictionRepository_Create_AssignsID(t *testing.T) {
	mock := newMock(t)
	repo := NewPredictionRepository(mock)

	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	input := json.RawMessage(`{"property_id":1}`)
	result := json.RawMessage(`{"suggested_price":1593.9}`)
	mock.ExpectQuery("INSERT INTO ai_model_predictions").
		WithArgs(pgxmock.AnyArg(), models.ModelTypePriceOptimization, input, result, 0.8).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	p := &models.AIModelPrediction{
		ModelType:        models.ModelTypePriceOptimization,
		InputData:        input,
		PredictionResult: result,
		ConfidenceScore:  0.8,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewPredictionRepository(mock)

	id := uuid.New()
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM ai_model_predictions WHERE model_type = \\$1 ORDER BY created_at DESC").
		WithArgs(models.ModelTypeRiskAssessment, 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "model_type", "input_data", "prediction_result", "confidence_score", "created_at"}).
			AddRow(id, models.ModelTypeRiskAssessment, json.RawMessage(`{"tenant_id":1}`), json.RawMessage(`{}`), 0.8, now))

	list, err := repo.List(context.Background(), models.PredictionFilter{ModelType: models.ModelTypeRiskAssessment, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.JSONEq(t, `{"tenant_id":1}`, string(list[0].InputData))
}
