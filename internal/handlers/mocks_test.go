package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Havertz69/rental-app/internal/errors"
	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/scoring"
	"github.com/Havertz69/rental-app/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	staffToken  = "staff-token"
	tenantToken = "tenant-token"
)

type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) UpdatePropertyPricing(ctx context.Context, propertyID int64) (*services.PricingOutcome, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PricingOutcome), args.Error(1)
}

func (m *MockAIService) UpdatePropertyForecasts(ctx context.Context, propertyID int64) (map[string]scoring.Forecast, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]scoring.Forecast), args.Error(1)
}

func (m *MockAIService) UpdatePaymentPrediction(ctx context.Context, paymentID int64) (*services.PaymentOutcome, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentOutcome), args.Error(1)
}

func (m *MockAIService) UpdateRiskScores(ctx context.Context, tenantID, propertyID *int64) (*services.RiskOutcome, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RiskOutcome), args.Error(1)
}

func (m *MockAIService) AssessTenantRisk(ctx context.Context, tenantID int64) (*scoring.RiskAssessment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.RiskAssessment), args.Error(1)
}

func (m *MockAIService) AssessPropertyRisk(ctx context.Context, propertyID int64) (*scoring.RiskAssessment, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.RiskAssessment), args.Error(1)
}

func (m *MockAIService) TenantRecommendations(ctx context.Context, tenantID int64, topK int) ([]scoring.Match, error) {
	args := m.Called(ctx, tenantID, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.Match), args.Error(1)
}

func (m *MockAIService) Predictions(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AIModelPrediction), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (*services.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DashboardSummary), args.Error(1)
}

func (m *MockDashboardService) Analytics(ctx context.Context, months int) (*services.Analytics, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Analytics), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.Token, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Token), args.Error(1)
}

// ParseToken recognises the two fixed test tokens without going through the mock.
func (m *MockAuthService) ParseToken(token string) (*services.Claims, error) {
	switch token {
	case staffToken:
		return &services.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "staff"}, Email: "staff@example.com", IsStaff: true}, nil
	case tenantToken:
		return &services.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "tenant"}, Email: "tenant@example.com"}, nil
	}
	return nil, services.ErrInvalidToken
}

func (m *MockAuthService) Me(ctx context.Context, claims *services.Claims) (*models.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, email, password, fullName string, isStaff bool) (*models.User, error) {
	args := m.Called(ctx, email, password, fullName, isStaff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Create(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, t *models.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantService) Get(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *MockTenantService) RecordBehavior(ctx context.Context, b *models.TenantBehavior) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockTenantService) Behaviors(ctx context.Context, tenantID int64) ([]models.TenantBehavior, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TenantBehavior), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Create(ctx context.Context, p *models.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) Create(ctx context.Context, r *models.MaintenanceRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMaintenanceService) Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceService) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRequest), args.Error(1)
}

// testAPI is a router wired to mock services.
type testAPI struct {
	router      *gin.Engine
	ai          *MockAIService
	dashboard   *MockDashboardService
	auth        *MockAuthService
	properties  *MockPropertyService
	tenants     *MockTenantService
	payments    *MockPaymentService
	maintenance *MockMaintenanceService
}

func newTestAPI() *testAPI {
	api := &testAPI{
		ai:          new(MockAIService),
		dashboard:   new(MockDashboardService),
		auth:        new(MockAuthService),
		properties:  new(MockPropertyService),
		tenants:     new(MockTenantService),
		payments:    new(MockPaymentService),
		maintenance: new(MockMaintenanceService),
	}
	api.router = NewRouter(RouterConfig{
		Log:         logger.Nop(),
		DB:          stubPinger{},
		Env:         "test",
		CORSOrigins: []string{"http://localhost:3000"},
		MatchTopK:   5,
		AI:          api.ai,
		Dashboard:   api.dashboard,
		Auth:        api.auth,
		Properties:  api.properties,
		Tenants:     api.tenants,
		Payments:    api.payments,
		Maintenance: api.maintenance,
	})
	return api
}

// do sends a request with an optional bearer token and JSON body.
func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierrors.ErrorResponse](t, w).Error.Code
}

