package scoring

import (
	"math"

	"github.com/Havertz69/rental-app/internal/models"
)

// PaymentPrediction is the predicted outcome of a single payment.
type PaymentPrediction struct {
	LatePaymentProbability float64 `json:"late_payment_probability"`
	DaysOverduePredicted   int     `json:"days_overdue_predicted"`
	RiskScore              float64 `json:"risk_score"`
}

// PredictLatePayment returns the probability in [0, 1] that the payment will
// be late, from the tenant's history, credit, reliability and the payment's
// size relative to what the tenant usually pays.
func PredictLatePayment(t models.Tenant, p models.Payment, h models.PaymentHistory) float64 {
	probability := 0.0

	if h.Total > 0 {
		probability += float64(h.Late) / float64(h.Total) * 0.4
	} else {
		probability += 0.2
	}

	switch {
	case t.CreditScore >= 700:
		probability += 0.05
	case t.CreditScore >= 600:
		probability += 0.15
	default:
		probability += 0.25
	}

	probability += (1.0 - t.PaymentReliabilityScore/10.0) * 0.2

	avgPaid := p.Amount
	if h.AvgPaidAmount != nil && *h.AvgPaidAmount != 0 {
		avgPaid = *h.AvgPaidAmount
	}
	if p.Amount > avgPaid*1.2 {
		probability += 0.15
	}

	return clamp(finiteOr(probability, 0.5), 0, 1)
}

// DaysOverdueBucket maps a late probability to 0, 7, 14 or 30 days.
func DaysOverdueBucket(probability float64) int {
	switch {
	case probability < 0.3:
		return 0
	case probability < 0.6:
		return 7
	case probability < 0.8:
		return 14
	default:
		return 30
	}
}

// PaymentConfidence is highest for predictions far from a coin toss.
func PaymentConfidence(probability float64) float64 {
	return 1.0 - math.Abs(probability-0.5)
}

// PredictPayment combines the probability, day bucket and 0-10 risk score.
func PredictPayment(t models.Tenant, p models.Payment, h models.PaymentHistory) PaymentPrediction {
	probability := PredictLatePayment(t, p, h)
	return PaymentPrediction{
		LatePaymentProbability: probability,
		DaysOverduePredicted:   DaysOverdueBucket(probability),
		RiskScore:              probability * 10.0,
	}
}
