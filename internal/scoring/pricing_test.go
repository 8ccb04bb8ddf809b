package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Havertz69/rental-app/internal/models"
)

func at(month time.Month) time.Time {
	return time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestSeasonFactor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  float64
	}{
		{time.January, 0.9},
		{time.February, 0.9},
		{time.March, 1.0},
		{time.May, 1.0},
		{time.June, 1.2},
		{time.July, 1.2},
		{time.August, 1.2},
		{time.September, 1.0},
		{time.December, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonFactor(tt.month))
		})
	}
}

func TestCohortOccupancy(t *testing.T) {
	assert.Equal(t, 0.5, CohortOccupancy(models.CohortStats{}))
	assert.Equal(t, 0.95, CohortOccupancy(models.CohortStats{Total: 20, Occupied: 19}))
	assert.Equal(t, 0.0, CohortOccupancy(models.CohortStats{Total: 4}))
}

func TestSuggestPrice(t *testing.T) {
	tests := []struct {
		name     string
		property models.Property
		cohort   models.CohortStats
		month    time.Month
		want     float64
	}{
		{
			name:     "high occupancy summer large multi-bedroom",
			property: models.Property{Price: 1000, Bedrooms: 2, SquareFeet: 600},
			cohort:   models.CohortStats{Total: 20, Occupied: 19, AvgPrice: 1000},
			month:    time.July,
			want:     1593.9,
		},
		{
			name:     "single-property cohort skips occupancy adjustment",
			property: models.Property{Price: 1000, Bedrooms: 1, SquareFeet: 400},
			cohort:   models.CohortStats{Total: 1, Occupied: 1, AvgPrice: 1000},
			month:    time.April,
			want:     1000,
		},
		{
			name:     "low occupancy winter",
			property: models.Property{Price: 1000, Bedrooms: 1, SquareFeet: 400},
			cohort:   models.CohortStats{Total: 4, Occupied: 1, AvgPrice: 1000},
			month:    time.January,
			want:     810,
		},
		{
			name:     "empty cohort",
			property: models.Property{Price: 850.5, Bedrooms: 3, SquareFeet: 300},
			cohort:   models.CohortStats{},
			month:    time.October,
			want:     935.55,
		},
		{
			name:     "mid occupancy leaves price alone",
			property: models.Property{Price: 1200, Bedrooms: 1, SquareFeet: 501},
			cohort:   models.CohortStats{Total: 10, Occupied: 7, AvgPrice: 1100},
			month:    time.March,
			want:     1260,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestPrice(tt.property, tt.cohort, at(tt.month)))
		})
	}
}

func TestDemandScore(t *testing.T) {
	tests := []struct {
		name     string
		property models.Property
		cohort   models.CohortStats
		want     float64
	}{
		{
			name:     "clamped at ten",
			property: models.Property{Price: 1000, Bedrooms: 2, Bathrooms: 1},
			cohort:   models.CohortStats{Total: 20, Occupied: 19, AvgPrice: 1100},
			want:     10,
		},
		{
			name:     "expensive property penalised",
			property: models.Property{Price: 1500, Bedrooms: 1, Bathrooms: 1},
			cohort:   models.CohortStats{Total: 2, Occupied: 1, AvgPrice: 1000},
			want:     5.8,
		},
		{
			name:     "empty cohort uses neutral occupancy",
			property: models.Property{Price: 900},
			cohort:   models.CohortStats{},
			want:     6.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DemandScore(tt.property, tt.cohort), 1e-9)
		})
	}
}

func TestDemandScore_AlwaysInRange(t *testing.T) {
	prices := []float64{0, 500, 1000, 5000}
	rooms := []int{0, 1, 4, 30}
	cohorts := []models.CohortStats{
		{},
		{Total: 1, Occupied: 0, AvgPrice: 1000},
		{Total: 10, Occupied: 10, AvgPrice: 100},
		{Total: 5, Occupied: 2, AvgPrice: 0},
	}

	for _, price := range prices {
		for _, r := range rooms {
			for _, c := range cohorts {
				score := DemandScore(models.Property{Price: price, Bedrooms: r, Bathrooms: r}, c)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 10.0)
			}
		}
	}
}

func TestPrice_Difference(t *testing.T) {
	result := Price(
		models.Property{Price: 1000, Bedrooms: 2, SquareFeet: 600},
		models.CohortStats{Total: 20, Occupied: 19, AvgPrice: 1000},
		at(time.July),
	)
	assert.Equal(t, 1593.9, result.SuggestedPrice)
	assert.InDelta(t, 593.9, result.PriceDifference, 1e-9)
	assert.InDelta(t, 59.39, result.PriceDifferencePercent, 1e-9)
}

func TestPrice_ZeroPrice(t *testing.T) {
	result := Price(models.Property{Price: 0}, models.CohortStats{}, at(time.July))
	assert.Equal(t, 0.0, result.SuggestedPrice)
	assert.Equal(t, 0.0, result.PriceDifferencePercent)
}

func TestPrice_Idempotent(t *testing.T) {
	p := models.Property{Price: 1234.56, Bedrooms: 2, Bathrooms: 2, SquareFeet: 700}
	c := models.CohortStats{Total: 6, Occupied: 5, AvgPrice: 1300}
	now := at(time.August)
	assert.Equal(t, Price(p, c, now), Price(p, c, now))
}
