package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Havertz69/rental-app/internal/models"
)

var propertyCols = []string{
	"id", "name", "property_type", "location", "price", "bedrooms", "bathrooms",
	"square_feet", "available", "occupancy_rate", "suggested_price",
	"demand_score", "risk_score", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPropertyRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	suggested := 1250.0
	mock.ExpectQuery("SELECT .+ FROM properties WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(
			int64(7), "Sunset Apt 1", "apartment", "Nairobi CBD", 1000.0, 2, 1,
			650, true, 0.8, &suggested, 6.5, 3.2, created, created,
		))

	p, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Nairobi CBD", p.Location)
	assert.Equal(t, 1000.0, p.Price)
	require.NotNil(t, p.SuggestedPrice)
	assert.Equal(t, 1250.0, *p.SuggestedPrice)
	assert.Equal(t, "available", p.Status())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM properties WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(propertyCols))

	p, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetByID_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM properties WHERE id").
		WithArgs(int64(1)).
		WillReturnError(fmt.Errorf("connection reset"))

	p, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "failed to query property 1")
}

func TestPropertyRepository_List_Filters(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	available := true
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM properties WHERE available = \\$1 AND location = \\$2 ORDER BY id LIMIT \\$3 OFFSET \\$4").
		WithArgs(true, "Nairobi", 5, 0).
		WillReturnRows(pgxmock.NewRows(propertyCols).
			AddRow(int64(1), "A", "apartment", "Nairobi", 900.0, 1, 1, 400, true, 0.5, (*float64)(nil), 5.0, 0.0, created, created).
			AddRow(int64(2), "B", "house", "Nairobi", 1500.0, 3, 2, 900, true, 0.9, (*float64)(nil), 7.0, 0.0, created, created))

	results, err := repo.List(context.Background(), models.PropertyFilter{
		Available: &available,
		Location:  "Nairobi",
		Limit:     5,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)
	assert.Nil(t, results[0].SuggestedPrice)
	assert.Equal(t, "house", results[1].PropertyType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("FROM properties ORDER BY id").
		WithArgs(defaultListLimit, 0).
		WillReturnRows(pgxmock.NewRows(propertyCols))

	results, err := repo.List(context.Background(), models.PropertyFilter{})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestPropertyRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO properties").
		WithArgs("Loft", "apartment", "Westlands", 1200.0, 1, 1, 480, true, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(12), now, now))

	p := &models.Property{
		Name: "Loft", PropertyType: "apartment", Location: "Westlands",
		Price: 1200, Bedrooms: 1, Bathrooms: 1, SquareFeet: 480, Available: true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_CohortStats(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("FROM properties\\s+WHERE location = \\$1 AND property_type = \\$2").
		WithArgs("Kilimani", "apartment").
		WillReturnRows(pgxmock.NewRows([]string{"count", "occupied", "avg"}).AddRow(20, 19, 1100.0))

	s, err := repo.CohortStats(context.Background(), "Kilimani", "apartment")
	require.NoError(t, err)
	assert.Equal(t, models.CohortStats{Total: 20, Occupied: 19, AvgPrice: 1100}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_LocationStats(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("AVG\\(occupancy_rate\\)").
		WithArgs("Kilimani").
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg"}).AddRow(4, 0.75))

	s, err := repo.LocationStats(context.Background(), "Kilimani")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 0.75, s.AvgOccupancy)
}

func TestPropertyRepository_Stats(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("suggested_price > price \\* 1.1").
		WillReturnRows(pgxmock.NewRows([]string{"total", "available", "avg", "under", "low"}).
			AddRow(10, 4, 0.72, 2, 1))

	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStats{Total: 10, Available: 4, AvgOccupancy: 0.72, Underpriced: 2, LowOccupancy: 1}, s)
}

func TestPropertyRepository_UpdatePricing(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectExec("UPDATE properties\\s+SET suggested_price").
		WithArgs(int64(3), 1593.9, 8.4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePricing(context.Background(), 3, 1593.9, 8.4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_UpdateRiskScore_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectExec("UPDATE properties SET risk_score").
		WithArgs(int64(3), 4.2).
		WillReturnError(fmt.Errorf("deadlock detected"))

	err := repo.UpdateRiskScore(context.Background(), 3, 4.2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property 3")
}

func TestPropertyRepository_IDs(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("SELECT id FROM properties ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(4)))

	ids, err := repo.IDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids)
}
