package services

import (
	"context"
	"fmt"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// PropertyService manages property records.
type PropertyService interface {
	Create(ctx context.Context, p *models.Property) error
	// Get returns ErrPropertyNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*models.Property, error)
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)
}

type propertyService struct {
	repos Repositories
	log   *logger.Logger
}

// NewPropertyService creates a property service.
func NewPropertyService(repos Repositories, log *logger.Logger) PropertyService {
	return &propertyService{repos: repos, log: log.Component("property_service")}
}

func (s *propertyService) Create(ctx context.Context, p *models.Property) error {
	if p.OccupancyRate < 0 || p.OccupancyRate > 1 {
		return fmt.Errorf("%w: occupancy_rate must be within [0,1]", ErrInvalidInput)
	}
	if err := s.repos.Properties.Create(ctx, p); err != nil {
		return err
	}
	s.log.Info("Property created", map[string]interface{}{"property_id": p.ID, "location": p.Location})
	return nil
}

func (s *propertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.repos.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	return p, nil
}

func (s *propertyService) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	return s.repos.Properties.List(ctx, filter)
}
