package scoring

import (
	"time"

	"github.com/Havertz69/rental-app/internal/models"
)

const defaultCohortOccupancy = 0.5

// SeasonFactor is the pricing multiplier for a calendar month: 1.2 in summer,
// 0.9 in winter, 1.0 otherwise.
func SeasonFactor(m time.Month) float64 {
	switch {
	case isSummer(m):
		return 1.2
	case isWinter(m):
		return 0.9
	default:
		return 1.0
	}
}

// CohortOccupancy is the share of occupied properties in the cohort, or 0.5
// for an empty cohort.
func CohortOccupancy(c models.CohortStats) float64 {
	if c.Total <= 0 {
		return defaultCohortOccupancy
	}
	return float64(c.Occupied) / float64(c.Total)
}

// cohortAvgPrice falls back to the property's own price when the cohort has
// no usable average.
func cohortAvgPrice(p models.Property, c models.CohortStats) float64 {
	if c.Total <= 0 || c.AvgPrice == 0 {
		return p.Price
	}
	return c.AvgPrice
}

// SuggestPrice returns the rule-based rent suggestion rounded to cents.
// The occupancy premium or discount only applies when the cohort holds more
// than the property itself.
func SuggestPrice(p models.Property, cohort models.CohortStats, now time.Time) float64 {
	price := p.Price

	if cohort.Total > 1 {
		occupancy := CohortOccupancy(cohort)
		switch {
		case occupancy > 0.9:
			price *= 1.15
		case occupancy < 0.5:
			price *= 0.9
		}
	}

	price *= SeasonFactor(now.Month())

	if p.Bedrooms > 1 {
		price *= 1.1
	}
	if p.SquareFeet > 500 {
		price *= 1.05
	}

	return round2(finiteOr(price, p.Price))
}

// DemandScore rates how sought-after a property is on a 0-10 scale.
func DemandScore(p models.Property, cohort models.CohortStats) float64 {
	score := 5.0
	score += CohortOccupancy(cohort) * 3.0

	avg := cohortAvgPrice(p, cohort)
	switch {
	case p.Price < avg:
		score += 2.0
	case p.Price > avg*1.2:
		score -= 1.5
	}

	score += float64(p.Bedrooms) * 0.5
	score += float64(p.Bathrooms) * 0.3

	return clamp(finiteOr(score, 5.0), 0, 10)
}

// PricingResult is the outcome of one pricing run.
type PricingResult struct {
	SuggestedPrice         float64 `json:"suggested_price"`
	DemandScore            float64 `json:"demand_score"`
	PriceDifference        float64 `json:"price_difference"`
	PriceDifferencePercent float64 `json:"price_difference_percent"`
}

// Price runs both pricing rules and reports the gap to the current rent.
func Price(p models.Property, cohort models.CohortStats, now time.Time) PricingResult {
	suggested := SuggestPrice(p, cohort, now)
	diff := suggested - p.Price

	percent := 0.0
	if p.Price != 0 {
		percent = diff / p.Price * 100
	}

	return PricingResult{
		SuggestedPrice:         suggested,
		DemandScore:            DemandScore(p, cohort),
		PriceDifference:        diff,
		PriceDifferencePercent: percent,
	}
}
