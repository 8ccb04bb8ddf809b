package scoring

import (
	"fmt"
	"time"

	"github.com/Havertz69/rental-app/internal/models"
)

// ForecastHorizons are the month offsets produced by a forecast run.
var ForecastHorizons = []int{1, 3, 6}

// ForecastKey names a horizon in the forecast map, e.g. "3_month".
func ForecastKey(monthsAhead int) string {
	return fmt.Sprintf("%d_month", monthsAhead)
}

// Forecast is the predicted occupancy and revenue for one horizon.
type Forecast struct {
	PredictedOccupancyRate  float64 `json:"predicted_occupancy_rate"`
	PredictedMonthlyRevenue float64 `json:"predicted_monthly_revenue"`
	PredictedAnnualRevenue  float64 `json:"predicted_annual_revenue"`
	MonthsAhead             int     `json:"months_ahead"`
}

// TargetMonth is the calendar month monthsAhead after current, wrapped to 1..12.
func TargetMonth(current time.Month, monthsAhead int) time.Month {
	m := (int(current)+monthsAhead-1)%12 + 1
	if m <= 0 {
		m += 12
	}
	return time.Month(m)
}

func occupancySeasonFactor(m time.Month) float64 {
	switch {
	case isSummer(m):
		return 1.1
	case isWinter(m):
		return 0.9
	default:
		return 1.0
	}
}

func revenueSeasonFactor(m time.Month) float64 {
	switch {
	case isSummer(m):
		return 1.1
	case isWinter(m):
		return 0.95
	default:
		return 1.0
	}
}

func demandTrend(demandScore float64, monthsAhead int) float64 {
	switch {
	case demandScore > 7.0:
		return 0.05 * float64(monthsAhead)
	case demandScore < 4.0:
		return -0.03 * float64(monthsAhead)
	default:
		return 0
	}
}

func forecastPriceFactor(p models.Property, cohort models.CohortStats) float64 {
	if cohort.Total <= 0 {
		return 1.0
	}
	avg := cohortAvgPrice(p, cohort)
	switch {
	case p.Price < avg*0.9:
		return 1.05
	case p.Price > avg*1.1:
		return 0.95
	default:
		return 1.0
	}
}

// ForecastOccupancy predicts the occupancy rate monthsAhead from now, in [0, 1].
func ForecastOccupancy(p models.Property, cohort models.CohortStats, now time.Time, monthsAhead int) float64 {
	target := TargetMonth(now.Month(), monthsAhead)

	occupancy := p.OccupancyRate + demandTrend(p.DemandScore, monthsAhead)
	occupancy *= occupancySeasonFactor(target) * forecastPriceFactor(p, cohort)

	return clamp(finiteOr(occupancy, p.OccupancyRate), 0, 1)
}

// ForecastRevenue predicts occupancy and revenue for one horizon. The target
// month's seasonal factor is applied to revenue on top of the one already
// folded into occupancy.
func ForecastRevenue(p models.Property, cohort models.CohortStats, now time.Time, monthsAhead int) Forecast {
	occupancy := ForecastOccupancy(p, cohort, now, monthsAhead)
	monthly := p.Price * occupancy * revenueSeasonFactor(TargetMonth(now.Month(), monthsAhead))

	return Forecast{
		PredictedOccupancyRate:  occupancy,
		PredictedMonthlyRevenue: monthly,
		PredictedAnnualRevenue:  monthly * 12,
		MonthsAhead:             monthsAhead,
	}
}

// ForecastAll runs every horizon in ForecastHorizons, keyed by ForecastKey.
func ForecastAll(p models.Property, cohort models.CohortStats, now time.Time) map[string]Forecast {
	out := make(map[string]Forecast, len(ForecastHorizons))
	for _, m := range ForecastHorizons {
		out[ForecastKey(m)] = ForecastRevenue(p, cohort, now, m)
	}
	return out
}
