package services

import (
	"context"
	"fmt"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// PaymentService manages rent payments.
type PaymentService interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

type paymentService struct {
	repos Repositories
	log   *logger.Logger
}

// NewPaymentService creates a payment service.
func NewPaymentService(repos Repositories, log *logger.Logger) PaymentService {
	return &paymentService{repos: repos, log: log.Component("payment_service")}
}

func (s *paymentService) Create(ctx context.Context, p *models.Payment) error {
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	if p.TenantID != nil {
		t, err := s.repos.Tenants.GetByID(ctx, *p.TenantID)
		if err != nil {
			return fmt.Errorf("failed to load tenant: %w", err)
		}
		if t == nil {
			return fmt.Errorf("%w: %d", ErrTenantNotFound, *p.TenantID)
		}
	}
	if p.PropertyID != nil {
		prop, err := s.repos.Properties.GetByID(ctx, *p.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to load property: %w", err)
		}
		if prop == nil {
			return fmt.Errorf("%w: %d", ErrPropertyNotFound, *p.PropertyID)
		}
	}
	if err := s.repos.Payments.Create(ctx, p); err != nil {
		return err
	}
	s.log.Info("Payment created", map[string]interface{}{"payment_id": p.ID, "status": p.Status})
	return nil
}

func (s *paymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	p, err := s.repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrPaymentNotFound, id)
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	return s.repos.Payments.List(ctx, filter)
}
