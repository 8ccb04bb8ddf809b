package models

import (
	"encoding/json"
	"time"
)

// TenantBehavior is an append-only observation about a tenant.
type TenantBehavior struct {
	Timestamp    time.Time       `db:"timestamp" json:"timestamp"`
	Data         json.RawMessage `db:"data" json:"data"`
	BehaviorType string          `db:"behavior_type" json:"behavior_type"`
	RiskScore    float64         `db:"risk_score" json:"risk_score"`
	TenantID     int64           `db:"tenant_id" json:"tenant_id"`
	ID           int64           `db:"id" json:"id"`
}

// BehaviorSummary is the recent-window aggregate used by behaviour risk.
type BehaviorSummary struct {
	Count   int
	AvgRisk float64
}
