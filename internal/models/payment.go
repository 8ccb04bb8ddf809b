package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusLate    = "late"
	PaymentStatusOverdue = "overdue"
)

// Payment is a single rent charge. The three prediction fields are written
// by the payment-risk predictor.
type Payment struct {
	DueDate                time.Time  `db:"due_date" json:"due_date"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	PaymentDate            *time.Time `db:"payment_date" json:"payment_date"`
	TenantID               *int64     `db:"tenant_id" json:"tenant_id"`
	PropertyID             *int64     `db:"property_id" json:"property_id"`
	Status                 string     `db:"status" json:"status"`
	Amount                 float64    `db:"amount" json:"amount"`
	LatePaymentProbability float64    `db:"late_payment_probability" json:"late_payment_probability"`
	PaymentRiskScore       float64    `db:"payment_risk_score" json:"payment_risk_score"`
	DaysOverduePredicted   int        `db:"days_overdue_predicted" json:"days_overdue_predicted"`
	ID                     int64      `db:"id" json:"id"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	TenantID   *int64
	PropertyID *int64
	Status     string
	Limit      int
	Offset     int
}

// PaymentHistory summarises a tenant's past payments for risk scoring.
type PaymentHistory struct {
	// AvgPaidAmount is nil when the tenant has no paid payments.
	AvgPaidAmount *float64
	Total         int
	Late          int
}

// MonthlyRevenue is the paid total for one calendar month.
type MonthlyRevenue struct {
	Month   time.Time       `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
