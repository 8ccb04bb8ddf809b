package services

import (
	"errors"
	"time"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/repository"
)

// Service-level errors. Handlers map the not-found family to 404.
var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")
	ErrNoRiskTarget        = errors.New("tenant_id or property_id required")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidInput        = errors.New("invalid input")
)

// Repositories bundles the data access layer handed to services.
type Repositories struct {
	Properties  repository.PropertyRepository
	Tenants     repository.TenantRepository
	Payments    repository.PaymentRepository
	Maintenance repository.MaintenanceRepository
	Behaviors   repository.BehaviorRepository
	Predictions repository.PredictionRepository
	Users       repository.UserRepository
}

// NewRepositories builds the postgres-backed repositories over one pool.
func NewRepositories(db database.Querier) Repositories {
	return Repositories{
		Properties:  repository.NewPropertyRepository(db),
		Tenants:     repository.NewTenantRepository(db),
		Payments:    repository.NewPaymentRepository(db),
		Maintenance: repository.NewMaintenanceRepository(db),
		Behaviors:   repository.NewBehaviorRepository(db),
		Predictions: repository.NewPredictionRepository(db),
		Users:       repository.NewUserRepository(db),
	}
}

// Clock returns the current time. Tests freeze it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
