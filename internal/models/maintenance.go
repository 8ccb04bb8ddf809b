package models

import (
	"time"
)

// Maintenance request statuses.
const (
	MaintenanceStatusSubmitted  = "submitted"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// MaintenanceRequest is a repair ticket. PriorityScore and
// CompletionTimePredicted exist in the schema but nothing computes them.
type MaintenanceRequest struct {
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	TenantID                *int64    `db:"tenant_id" json:"tenant_id"`
	PropertyID              *int64    `db:"property_id" json:"property_id"`
	PriorityScore           *float64  `db:"priority_score" json:"priority_score"`
	CompletionTimePredicted *int      `db:"completion_time_predicted" json:"completion_time_predicted"`
	IssueDescription        string    `db:"issue_description" json:"issue_description"`
	Status                  string    `db:"status" json:"status"`
	ID                      int64     `db:"id" json:"id"`
}

// MaintenanceFilter narrows maintenance listings.
type MaintenanceFilter struct {
	TenantID   *int64
	PropertyID *int64
	Status     string
	Limit      int
	Offset     int
}

// MaintenanceCounts holds lifetime and recent request counts for one tenant or property.
type MaintenanceCounts struct {
	Total  int
	Recent int
}
