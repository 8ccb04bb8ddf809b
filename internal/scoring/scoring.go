// Package scoring holds the rule-based scorers behind the AI endpoints:
// pricing, occupancy forecasting, payment risk, composite risk and tenant
// allocation. Every function is pure; callers pass in aggregates read from the
// database and the current time.
package scoring

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// finiteOr returns fallback when v is NaN or infinite.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isSummer(m time.Month) bool {
	return m == time.June || m == time.July || m == time.August
}

func isWinter(m time.Month) bool {
	return m == time.December || m == time.January || m == time.February
}
