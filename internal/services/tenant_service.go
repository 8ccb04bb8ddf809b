package services

import (
	"context"
	"fmt"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// behaviorListLimit bounds the behaviours returned for one tenant.
const behaviorListLimit = 100

// TenantService manages tenants and their behaviour log.
type TenantService interface {
	// Create rejects a property_id that does not exist.
	Create(ctx context.Context, t *models.Tenant) error
	Get(ctx context.Context, id int64) (*models.Tenant, error)
	List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error)

	// RecordBehavior appends an observation for an existing tenant.
	RecordBehavior(ctx context.Context, b *models.TenantBehavior) error
	Behaviors(ctx context.Context, tenantID int64) ([]models.TenantBehavior, error)
}

type tenantService struct {
	repos Repositories
	log   *logger.Logger
	now   Clock
}

// NewTenantService creates a tenant service.
func NewTenantService(repos Repositories, log *logger.Logger) TenantService {
	return &tenantService{repos: repos, log: log.Component("tenant_service"), now: systemClock}
}

func (s *tenantService) Create(ctx context.Context, t *models.Tenant) error {
	if t.BudgetMin > 0 && t.BudgetMax > 0 && t.BudgetMin > t.BudgetMax {
		return fmt.Errorf("%w: budget_min exceeds budget_max", ErrInvalidInput)
	}
	if t.PropertyID != nil {
		p, err := s.repos.Properties.GetByID(ctx, *t.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to load property: %w", err)
		}
		if p == nil {
			return fmt.Errorf("%w: %d", ErrPropertyNotFound, *t.PropertyID)
		}
	}
	if err := s.repos.Tenants.Create(ctx, t); err != nil {
		return err
	}
	s.log.Info("Tenant created", map[string]interface{}{"tenant_id": t.ID})
	return nil
}

func (s *tenantService) Get(ctx context.Context, id int64) (*models.Tenant, error) {
	t, err := s.repos.Tenants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %d", ErrTenantNotFound, id)
	}
	return t, nil
}

func (s *tenantService) List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error) {
	return s.repos.Tenants.List(ctx, filter)
}

func (s *tenantService) RecordBehavior(ctx context.Context, b *models.TenantBehavior) error {
	if _, err := s.Get(ctx, b.TenantID); err != nil {
		return err
	}
	if b.RiskScore < 0 || b.RiskScore > 10 {
		return fmt.Errorf("%w: risk_score must be within [0,10]", ErrInvalidInput)
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = s.now()
	}
	if err := s.repos.Behaviors.Create(ctx, b); err != nil {
		return err
	}
	s.log.Debug("Behavior recorded", map[string]interface{}{
		"tenant_id":     b.TenantID,
		"behavior_type": b.BehaviorType,
	})
	return nil
}

func (s *tenantService) Behaviors(ctx context.Context, tenantID int64) ([]models.TenantBehavior, error) {
	if _, err := s.Get(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repos.Behaviors.ListByTenant(ctx, tenantID, behaviorListLimit)
}
