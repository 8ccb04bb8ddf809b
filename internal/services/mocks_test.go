package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Havertz69/rental-app/internal/models"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) IDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPropertyRepository) CohortStats(ctx context.Context, location, propertyType string) (models.CohortStats, error) {
	args := m.Called(ctx, location, propertyType)
	return args.Get(0).(models.CohortStats), args.Error(1)
}

func (m *MockPropertyRepository) LocationStats(ctx context.Context, location string) (models.LocationStats, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(models.LocationStats), args.Error(1)
}

func (m *MockPropertyRepository) Stats(ctx context.Context) (models.PropertyStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.PropertyStats), args.Error(1)
}

func (m *MockPropertyRepository) UpdatePricing(ctx context.Context, id int64, suggestedPrice, demandScore float64) error {
	return m.Called(ctx, id, suggestedPrice, demandScore).Error(0)
}

func (m *MockPropertyRepository) UpdateRiskScore(ctx context.Context, id int64, riskScore float64) error {
	return m.Called(ctx, id, riskScore).Error(0)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepository) IDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTenantRepository) ListActiveByProperty(ctx context.Context, propertyID int64) ([]models.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateBehaviorRisk(ctx context.Context, id int64, riskScore float64) error {
	return m.Called(ctx, id, riskScore).Error(0)
}

func (m *MockTenantRepository) Stats(ctx context.Context) (models.TenantStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.TenantStats), args.Error(1)
}

func (m *MockTenantRepository) ReliabilityDistribution(ctx context.Context) (models.ReliabilityDistribution, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ReliabilityDistribution), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) PendingIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPaymentRepository) History(ctx context.Context, tenantID int64) (models.PaymentHistory, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(models.PaymentHistory), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePrediction(ctx context.Context, id int64, lateProbability float64, daysOverdue int, riskScore float64) error {
	return m.Called(ctx, id, lateProbability, daysOverdue, riskScore).Error(0)
}

func (m *MockPaymentRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]models.MonthlyRevenue, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyRevenue), args.Error(1)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, r *models.MaintenanceRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMaintenanceRepository) CountByTenant(ctx context.Context, tenantID int64, since time.Time) (models.MaintenanceCounts, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Get(0).(models.MaintenanceCounts), args.Error(1)
}

func (m *MockMaintenanceRepository) CountByProperty(ctx context.Context, propertyID int64, since time.Time) (models.MaintenanceCounts, error) {
	args := m.Called(ctx, propertyID, since)
	return args.Get(0).(models.MaintenanceCounts), args.Error(1)
}

func (m *MockMaintenanceRepository) CountOpen(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockBehaviorRepository struct {
	mock.Mock
}

func (m *MockBehaviorRepository) Create(ctx context.Context, b *models.TenantBehavior) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBehaviorRepository) ListByTenant(ctx context.Context, tenantID int64, limit int) ([]models.TenantBehavior, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TenantBehavior), args.Error(1)
}

func (m *MockBehaviorRepository) Summary(ctx context.Context, tenantID int64, since time.Time) (models.BehaviorSummary, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Get(0).(models.BehaviorSummary), args.Error(1)
}

type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, p *models.AIModelPrediction) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPredictionRepository) List(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AIModelPrediction), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

// mockRepos holds one mock per repository and exposes them as Repositories.
type mockRepos struct {
	properties  *MockPropertyRepository
	tenants     *MockTenantRepository
	payments    *MockPaymentRepository
	maintenance *MockMaintenanceRepository
	behaviors   *MockBehaviorRepository
	predictions *MockPredictionRepository
	users       *MockUserRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		properties:  new(MockPropertyRepository),
		tenants:     new(MockTenantRepository),
		payments:    new(MockPaymentRepository),
		maintenance: new(MockMaintenanceRepository),
		behaviors:   new(MockBehaviorRepository),
		predictions: new(MockPredictionRepository),
		users:       new(MockUserRepository),
	}
}

func (m *mockRepos) repos() Repositories {
	return Repositories{
		Properties:  m.properties,
		Tenants:     m.tenants,
		Payments:    m.payments,
		Maintenance: m.maintenance,
		Behaviors:   m.behaviors,
		Predictions: m.predictions,
		Users:       m.users,
	}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.properties.AssertExpectations(t)
	m.tenants.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.maintenance.AssertExpectations(t)
	m.behaviors.AssertExpectations(t)
	m.predictions.AssertExpectations(t)
	m.users.AssertExpectations(t)
}
