package services

import (
	"context"
	"fmt"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// MaintenanceService manages repair tickets.
type MaintenanceService interface {
	Create(ctx context.Context, m *models.MaintenanceRequest) error
	Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error)
}

type maintenanceService struct {
	repos Repositories
	log   *logger.Logger
}

// NewMaintenanceService creates a maintenance service.
func NewMaintenanceService(repos Repositories, log *logger.Logger) MaintenanceService {
	return &maintenanceService{repos: repos, log: log.Component("maintenance_service")}
}

func (s *maintenanceService) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	if m.Status == "" {
		m.Status = models.MaintenanceStatusSubmitted
	}
	if err := s.repos.Maintenance.Create(ctx, m); err != nil {
		return err
	}
	s.log.Info("Maintenance request created", map[string]interface{}{"request_id": m.ID})
	return nil
}

func (s *maintenanceService) Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	m, err := s.repos.Maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance request: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %d", ErrMaintenanceNotFound, id)
	}
	return m, nil
}

func (s *maintenanceService) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	return s.repos.Maintenance.List(ctx, filter)
}
