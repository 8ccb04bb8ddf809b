package models

import (
	"time"
)

// Tenant is a renter. CreditScore is supplied externally; BehaviorRiskScore
// is written by the risk assessor.
type Tenant struct {
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	PropertyID              *int64    `db:"property_id" json:"property_id"`
	FirstName               string    `db:"first_name" json:"first_name"`
	LastName                string    `db:"last_name" json:"last_name"`
	Email                   string    `db:"email" json:"email"`
	Phone                   string    `db:"phone" json:"phone"`
	PreferredPropertyType   string    `db:"preferred_property_type" json:"preferred_property_type"`
	PreferredLocation       string    `db:"preferred_location" json:"preferred_location"`
	BudgetMin               float64   `db:"budget_min" json:"budget_min"`
	BudgetMax               float64   `db:"budget_max" json:"budget_max"`
	CreditScore             int       `db:"credit_score" json:"credit_score"`
	PaymentReliabilityScore float64   `db:"payment_reliability_score" json:"payment_reliability_score"`
	BehaviorRiskScore       float64   `db:"behavior_risk_score" json:"behavior_risk_score"`
	ID                      int64     `db:"id" json:"id"`
	Active                  bool      `db:"active" json:"active"`
}

// FullName joins first and last name.
func (t Tenant) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

// HasBudget reports whether both budget bounds are set.
func (t Tenant) HasBudget() bool {
	return t.BudgetMin > 0 && t.BudgetMax > 0
}

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	Active     *bool
	PropertyID *int64
	Limit      int
	Offset     int
}

// TenantStats holds tenant aggregates for the dashboard.
type TenantStats struct {
	Active   int
	HighRisk int
}

// ReliabilityDistribution buckets tenants by payment reliability score.
type ReliabilityDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}
