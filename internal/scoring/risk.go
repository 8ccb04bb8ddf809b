package scoring

import (
	"math"
	"time"

	"github.com/Havertz69/rental-app/internal/models"
)

// RecentWindow is how far back behaviour and maintenance counts as recent.
const RecentWindow = 90 * 24 * time.Hour

// Risk levels returned by RiskLevel.
const (
	RiskVeryLow  = "Very Low"
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// Factor names in RiskAssessment.RiskFactors.
const (
	FactorPayment     = "payment_risk"
	FactorCredit      = "credit_risk"
	FactorBehavior    = "behavior_risk"
	FactorMaintenance = "maintenance_risk"
	FactorDuration    = "duration_risk"
	FactorLocation    = "location_risk"
	FactorOccupancy   = "occupancy_risk"
	FactorTenant      = "tenant_risk"
	FactorPrice       = "price_risk"
)

// RiskAssessment is a weighted composite of factor scores, each on 0-10.
type RiskAssessment struct {
	RiskFactors    map[string]float64 `json:"risk_factors"`
	RiskLevel      string             `json:"risk_level"`
	TotalRiskScore float64            `json:"total_risk_score"`
}

type weightedFactor struct {
	name   string
	score  float64
	weight float64
}

func composite(factors []weightedFactor) RiskAssessment {
	out := RiskAssessment{RiskFactors: make(map[string]float64, len(factors))}
	total := 0.0
	for _, f := range factors {
		out.RiskFactors[f.name] = f.score
		total += f.score * f.weight
	}
	out.TotalRiskScore = clamp(finiteOr(total, 5.0), 0, 10)
	out.RiskLevel = RiskLevel(out.TotalRiskScore)
	return out
}

// RiskLevel labels a 0-10 risk score.
func RiskLevel(score float64) string {
	switch {
	case score <= 2.0:
		return RiskVeryLow
	case score <= 4.0:
		return RiskLow
	case score <= 6.0:
		return RiskMedium
	case score <= 8.0:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// TenantRiskInput carries the aggregates needed to assess one tenant.
type TenantRiskInput struct {
	Tenant      models.Tenant
	Payments    models.PaymentHistory
	Behavior    models.BehaviorSummary
	Maintenance models.MaintenanceCounts
}

// AssessTenantRisk weighs payment history 30%, credit 25%, behaviour 20%,
// maintenance 15% and tenancy duration 10%.
func AssessTenantRisk(in TenantRiskInput, now time.Time) RiskAssessment {
	return composite([]weightedFactor{
		{FactorPayment, paymentHistoryRisk(in.Payments), 0.30},
		{FactorCredit, CreditRisk(in.Tenant.CreditScore), 0.25},
		{FactorBehavior, behaviorRisk(in.Behavior), 0.20},
		{FactorMaintenance, maintenanceRisk(in.Maintenance), 0.15},
		{FactorDuration, durationRisk(in.Tenant.CreatedAt, now), 0.10},
	})
}

func paymentHistoryRisk(h models.PaymentHistory) float64 {
	if h.Total <= 0 {
		return 5.0
	}
	return float64(h.Late) / float64(h.Total) * 10.0
}

// CreditRisk maps a credit score to a 0-10 risk step.
func CreditRisk(creditScore int) float64 {
	switch {
	case creditScore >= 750:
		return 1.0
	case creditScore >= 700:
		return 2.5
	case creditScore >= 650:
		return 4.0
	case creditScore >= 600:
		return 6.0
	case creditScore >= 550:
		return 8.0
	default:
		return 10.0
	}
}

func behaviorRisk(s models.BehaviorSummary) float64 {
	if s.Count <= 0 {
		return 3.0
	}
	return math.Min(s.AvgRisk, 10.0)
}

func maintenanceRisk(c models.MaintenanceCounts) float64 {
	if c.Total <= 0 {
		return 3.0
	}
	switch {
	case c.Recent > 5:
		return 8.0
	case c.Recent > 3:
		return 6.0
	case c.Recent > 1:
		return 4.0
	default:
		return 2.0
	}
}

func durationRisk(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 5.0
	}
	days := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case days < 30:
		return 7.0
	case days < 90:
		return 5.0
	case days < 365:
		return 3.0
	default:
		return 1.0
	}
}

// PropertyRiskInput carries the aggregates needed to assess one property.
// TenantRisks holds the total risk score of each active tenant.
type PropertyRiskInput struct {
	Property    models.Property
	Location    models.LocationStats
	Cohort      models.CohortStats
	Maintenance models.MaintenanceCounts
	TenantRisks []float64
}

// AssessPropertyRisk weighs location 30%, occupancy 25%, tenant mix 20%,
// maintenance 15% and price deviation 10%.
func AssessPropertyRisk(in PropertyRiskInput) RiskAssessment {
	return composite([]weightedFactor{
		{FactorLocation, locationRisk(in.Location), 0.30},
		{FactorOccupancy, occupancyRisk(in.Property.OccupancyRate), 0.25},
		{FactorTenant, tenantMixRisk(in.TenantRisks), 0.20},
		{FactorMaintenance, maintenanceRisk(in.Maintenance), 0.15},
		{FactorPrice, priceRisk(in.Property, in.Cohort), 0.10},
	})
}

func locationRisk(s models.LocationStats) float64 {
	if s.Count <= 0 {
		return 5.0
	}
	return occupancyRisk(s.AvgOccupancy)
}

func occupancyRisk(rate float64) float64 {
	switch {
	case rate > 0.9:
		return 2.0
	case rate > 0.7:
		return 4.0
	case rate > 0.5:
		return 6.0
	default:
		return 8.0
	}
}

func tenantMixRisk(risks []float64) float64 {
	if len(risks) == 0 {
		return 5.0
	}
	sum := 0.0
	for _, r := range risks {
		sum += r
	}
	return sum / float64(len(risks))
}

func priceRisk(p models.Property, cohort models.CohortStats) float64 {
	if cohort.Total <= 0 {
		return 5.0
	}
	avg := cohortAvgPrice(p, cohort)
	ratio := math.Abs(p.Price-avg) / avg
	return math.Min(finiteOr(ratio*10, 5.0), 10.0)
}
