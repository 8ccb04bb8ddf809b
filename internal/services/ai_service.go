package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/scoring"
)

// Confidence recorded with each prediction log entry.
const (
	pricingConfidence  = 0.8
	forecastConfidence = 0.75
	riskConfidence     = 0.8
)

// AIService coordinates the scorers: it reads entity state, runs the rules,
// writes derived fields back and appends one prediction log entry per run.
type AIService interface {
	// UpdatePropertyPricing recomputes suggested price and demand score.
	// Returns ErrPropertyNotFound for an unknown id.
	UpdatePropertyPricing(ctx context.Context, propertyID int64) (*PricingOutcome, error)

	// UpdatePropertyForecasts predicts 1, 3 and 6 months ahead. Nothing is
	// written to the property.
	UpdatePropertyForecasts(ctx context.Context, propertyID int64) (map[string]scoring.Forecast, error)

	// UpdatePaymentPrediction scores a payment's late risk. A payment without
	// a tenant is skipped without writes.
	UpdatePaymentPrediction(ctx context.Context, paymentID int64) (*PaymentOutcome, error)

	// UpdateRiskScores assesses and persists risk for whichever targets are
	// given. Returns ErrNoRiskTarget when both are nil.
	UpdateRiskScores(ctx context.Context, tenantID, propertyID *int64) (*RiskOutcome, error)

	// AssessTenantRisk and AssessPropertyRisk compute without persisting.
	AssessTenantRisk(ctx context.Context, tenantID int64) (*scoring.RiskAssessment, error)
	AssessPropertyRisk(ctx context.Context, propertyID int64) (*scoring.RiskAssessment, error)

	// TenantRecommendations ranks available properties for a tenant.
	TenantRecommendations(ctx context.Context, tenantID int64, topK int) ([]scoring.Match, error)

	// Predictions lists the prediction log, newest first.
	Predictions(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error)
}

// PricingOutcome is returned by UpdatePropertyPricing.
type PricingOutcome struct {
	scoring.PricingResult
	PropertyID   int64   `json:"property_id"`
	CurrentPrice float64 `json:"current_price"`
}

// PaymentOutcome is returned by UpdatePaymentPrediction. Prediction is nil
// when Skipped is set.
type PaymentOutcome struct {
	Prediction *scoring.PaymentPrediction `json:"prediction,omitempty"`
	PaymentID  int64                      `json:"payment_id"`
	Skipped    bool                       `json:"skipped"`
}

// RiskOutcome holds whichever assessments UpdateRiskScores ran.
type RiskOutcome struct {
	Tenant   *scoring.RiskAssessment `json:"tenant,omitempty"`
	Property *scoring.RiskAssessment `json:"property,omitempty"`
}

// AIOption customises an AIService.
type AIOption func(*aiService)

// WithClock overrides the wall clock used for seasons and recency windows.
func WithClock(c Clock) AIOption {
	return func(s *aiService) {
		s.now = c
	}
}

type aiService struct {
	repos Repositories
	log   *logger.Logger
	now   Clock
}

// NewAIService creates the scoring facade. It is constructed once at startup
// and shared by handlers and the rescore CLI.
func NewAIService(repos Repositories, log *logger.Logger, opts ...AIOption) AIService {
	s := &aiService{
		repos: repos,
		log:   log.Component("ai_service"),
		now:   systemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *aiService) property(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.repos.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	return p, nil
}

func (s *aiService) tenant(ctx context.Context, id int64) (*models.Tenant, error) {
	t, err := s.repos.Tenants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %d", ErrTenantNotFound, id)
	}
	return t, nil
}

func (s *aiService) UpdatePropertyPricing(ctx context.Context, propertyID int64) (*PricingOutcome, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	cohort, err := s.repos.Properties.CohortStats(ctx, p.Location, p.PropertyType)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing cohort: %w", err)
	}

	result := scoring.Price(*p, cohort, s.now())

	if err := s.repos.Properties.UpdatePricing(ctx, p.ID, result.SuggestedPrice, result.DemandScore); err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"property_id":   p.ID,
		"current_price": p.Price,
		"bedrooms":      p.Bedrooms,
		"bathrooms":     p.Bathrooms,
		"square_feet":   p.SquareFeet,
		"location":      p.Location,
		"property_type": p.PropertyType,
	}
	if err := s.logPrediction(ctx, models.ModelTypePriceOptimization, input, result, pricingConfidence); err != nil {
		return nil, err
	}

	s.log.Info("Property pricing updated", map[string]interface{}{
		"property_id":     p.ID,
		"suggested_price": result.SuggestedPrice,
		"demand_score":    result.DemandScore,
	})

	return &PricingOutcome{PricingResult: result, PropertyID: p.ID, CurrentPrice: p.Price}, nil
}

func (s *aiService) UpdatePropertyForecasts(ctx context.Context, propertyID int64) (map[string]scoring.Forecast, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	cohort, err := s.repos.Properties.CohortStats(ctx, p.Location, p.PropertyType)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast cohort: %w", err)
	}

	forecasts := scoring.ForecastAll(*p, cohort, s.now())

	input := map[string]interface{}{
		"property_id":       p.ID,
		"current_occupancy": p.OccupancyRate,
		"current_price":     p.Price,
		"demand_score":      p.DemandScore,
	}
	if err := s.logPrediction(ctx, models.ModelTypeOccupancyForecast, input, forecasts, forecastConfidence); err != nil {
		return nil, err
	}

	s.log.Info("Property forecasts generated", map[string]interface{}{
		"property_id": p.ID,
		"horizons":    len(forecasts),
	})

	return forecasts, nil
}

func (s *aiService) UpdatePaymentPrediction(ctx context.Context, paymentID int64) (*PaymentOutcome, error) {
	payment, err := s.repos.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: %d", ErrPaymentNotFound, paymentID)
	}

	if payment.TenantID == nil {
		s.log.Debug("Payment has no tenant, skipping prediction", map[string]interface{}{"payment_id": paymentID})
		return &PaymentOutcome{PaymentID: paymentID, Skipped: true}, nil
	}

	tenant, err := s.tenant(ctx, *payment.TenantID)
	if err != nil {
		return nil, err
	}

	history, err := s.repos.Payments.History(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	prediction := scoring.PredictPayment(*tenant, *payment, history)

	err = s.repos.Payments.UpdatePrediction(ctx, payment.ID,
		prediction.LatePaymentProbability, prediction.DaysOverduePredicted, prediction.RiskScore)
	if err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"tenant_id":  tenant.ID,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
		"due_date":   payment.DueDate.Format(time.DateOnly),
	}
	confidence := scoring.PaymentConfidence(prediction.LatePaymentProbability)
	if err := s.logPrediction(ctx, models.ModelTypePaymentPrediction, input, prediction, confidence); err != nil {
		return nil, err
	}

	s.log.Info("Payment prediction updated", map[string]interface{}{
		"payment_id":  payment.ID,
		"tenant_id":   tenant.ID,
		"probability": prediction.LatePaymentProbability,
	})

	return &PaymentOutcome{PaymentID: payment.ID, Prediction: &prediction}, nil
}

func (s *aiService) UpdateRiskScores(ctx context.Context, tenantID, propertyID *int64) (*RiskOutcome, error) {
	if tenantID == nil && propertyID == nil {
		return nil, ErrNoRiskTarget
	}

	out := &RiskOutcome{}

	if tenantID != nil {
		tenant, err := s.tenant(ctx, *tenantID)
		if err != nil {
			return nil, err
		}
		assessment, err := s.assessTenant(ctx, tenant)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Tenants.UpdateBehaviorRisk(ctx, tenant.ID, assessment.TotalRiskScore); err != nil {
			return nil, err
		}
		input := map[string]interface{}{"tenant_id": tenant.ID}
		if err := s.logPrediction(ctx, models.ModelTypeRiskAssessment, input, assessment, riskConfidence); err != nil {
			return nil, err
		}
		out.Tenant = &assessment
	}

	if propertyID != nil {
		p, err := s.property(ctx, *propertyID)
		if err != nil {
			return nil, err
		}
		assessment, err := s.assessProperty(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Properties.UpdateRiskScore(ctx, p.ID, assessment.TotalRiskScore); err != nil {
			return nil, err
		}
		input := map[string]interface{}{"property_id": p.ID}
		if err := s.logPrediction(ctx, models.ModelTypeRiskAssessment, input, assessment, riskConfidence); err != nil {
			return nil, err
		}
		out.Property = &assessment
	}

	return out, nil
}

func (s *aiService) AssessTenantRisk(ctx context.Context, tenantID int64) (*scoring.RiskAssessment, error) {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.assessTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *aiService) AssessPropertyRisk(ctx context.Context, propertyID int64) (*scoring.RiskAssessment, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.assessProperty(ctx, p)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// assessTenant gathers a tenant's aggregates and scores them.
func (s *aiService) assessTenant(ctx context.Context, tenant *models.Tenant) (scoring.RiskAssessment, error) {
	now := s.now()
	since := now.Add(-scoring.RecentWindow)

	history, err := s.repos.Payments.History(ctx, tenant.ID)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	behavior, err := s.repos.Behaviors.Summary(ctx, tenant.ID, since)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	maintenance, err := s.repos.Maintenance.CountByTenant(ctx, tenant.ID, since)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}

	return scoring.AssessTenantRisk(scoring.TenantRiskInput{
		Tenant:      *tenant,
		Payments:    history,
		Behavior:    behavior,
		Maintenance: maintenance,
	}, now), nil
}

// assessProperty scores a property. Every active tenant's risk is
// recomputed from scratch on each call.
func (s *aiService) assessProperty(ctx context.Context, p *models.Property) (scoring.RiskAssessment, error) {
	since := s.now().Add(-scoring.RecentWindow)

	location, err := s.repos.Properties.LocationStats(ctx, p.Location)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	cohort, err := s.repos.Properties.CohortStats(ctx, p.Location, p.PropertyType)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	maintenance, err := s.repos.Maintenance.CountByProperty(ctx, p.ID, since)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}
	tenants, err := s.repos.Tenants.ListActiveByProperty(ctx, p.ID)
	if err != nil {
		return scoring.RiskAssessment{}, err
	}

	risks := make([]float64, 0, len(tenants))
	for i := range tenants {
		a, err := s.assessTenant(ctx, &tenants[i])
		if err != nil {
			return scoring.RiskAssessment{}, err
		}
		risks = append(risks, a.TotalRiskScore)
	}

	return scoring.AssessPropertyRisk(scoring.PropertyRiskInput{
		Property:    *p,
		Location:    location,
		Cohort:      cohort,
		Maintenance: maintenance,
		TenantRisks: risks,
	}), nil
}

func (s *aiService) TenantRecommendations(ctx context.Context, tenantID int64, topK int) ([]scoring.Match, error) {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.availableProperties(ctx)
	if err != nil {
		return nil, err
	}

	matches := scoring.FindBestMatches(*tenant, candidates, topK)

	s.log.Debug("Tenant recommendations computed", map[string]interface{}{
		"tenant_id":  tenant.ID,
		"candidates": len(candidates),
		"matches":    len(matches),
	})

	return matches, nil
}

// candidatePageSize is the page size used to walk every available property.
// It matches the repository's list clamp so a short page means the end.
const candidatePageSize = 200

// availableProperties loads every available property, ordered by id.
func (s *aiService) availableProperties(ctx context.Context) ([]models.Property, error) {
	available := true
	var all []models.Property
	for offset := 0; ; offset += candidatePageSize {
		page, err := s.repos.Properties.List(ctx, models.PropertyFilter{
			Available: &available,
			Limit:     candidatePageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load candidate properties: %w", err)
		}
		all = append(all, page...)
		if len(page) < candidatePageSize {
			return all, nil
		}
	}
}

func (s *aiService) Predictions(ctx context.Context, filter models.PredictionFilter) ([]models.AIModelPrediction, error) {
	return s.repos.Predictions.List(ctx, filter)
}

func (s *aiService) logPrediction(ctx context.Context, modelType string, input, result interface{}, confidence float64) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode %s input: %w", modelType, err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode %s result: %w", modelType, err)
	}

	return s.repos.Predictions.Create(ctx, &models.AIModelPrediction{
		ModelType:        modelType,
		InputData:        inputJSON,
		PredictionResult: resultJSON,
		ConfidenceScore:  confidence,
	})
}
