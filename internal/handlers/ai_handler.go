package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/httpctx"
	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/scoring"
	"github.com/Havertz69/rental-app/internal/services"
)

// AIHandler exposes the scoring facade and dashboard over HTTP.
type AIHandler struct {
	ai        services.AIService
	dashboard services.DashboardService
	topK      int
}

// NewAIHandler creates an AIHandler. topK is the default number of
// recommendations when the client does not ask for one.
func NewAIHandler(ai services.AIService, dashboard services.DashboardService, topK int) *AIHandler {
	return &AIHandler{ai: ai, dashboard: dashboard, topK: topK}
}

// RecommendationsQuery binds GET /ai/tenant-recommendations.
type RecommendationsQuery struct {
	TenantID int64 `form:"tenant_id" binding:"required,gt=0"`
	TopK     int   `form:"top_k" binding:"omitempty,min=1,max=50"`
}

// RecommendationsResponse lists ranked properties for a tenant.
type RecommendationsResponse struct {
	Recommendations []scoring.Match `json:"recommendations"`
	TenantID        int64           `json:"tenant_id"`
	TotalMatches    int             `json:"total_matches"`
}

// TenantRecommendations handles GET /api/v1/ai/tenant-recommendations.
func (h *AIHandler) TenantRecommendations(c *gin.Context) {
	var q RecommendationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "tenant_id required")
		return
	}
	if q.TopK == 0 {
		q.TopK = h.topK
	}

	matches, err := h.ai.TenantRecommendations(c.Request.Context(), q.TenantID, q.TopK)
	if err != nil {
		respondServiceError(c, err, "Failed to compute recommendations")
		return
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		TenantID:        q.TenantID,
		Recommendations: matches,
		TotalMatches:    len(matches),
	})
}

// TenantRiskQuery binds GET /ai/tenant-risk-assessment.
type TenantRiskQuery struct {
	TenantID int64 `form:"tenant_id" binding:"required,gt=0"`
}

// TenantRiskAssessment handles GET /api/v1/ai/tenant-risk-assessment.
func (h *AIHandler) TenantRiskAssessment(c *gin.Context) {
	var q TenantRiskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "tenant_id required")
		return
	}

	assessment, err := h.ai.AssessTenantRisk(c.Request.Context(), q.TenantID)
	if err != nil {
		respondServiceError(c, err, "Failed to assess tenant risk")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant_id": q.TenantID, "risk_assessment": assessment})
}

// PropertyRiskQuery binds GET /ai/property-risk-assessment.
type PropertyRiskQuery struct {
	PropertyID int64 `form:"property_id" binding:"required,gt=0"`
}

// PropertyRiskAssessment handles GET /api/v1/ai/property-risk-assessment.
func (h *AIHandler) PropertyRiskAssessment(c *gin.Context) {
	var q PropertyRiskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "property_id required")
		return
	}

	assessment, err := h.ai.AssessPropertyRisk(c.Request.Context(), q.PropertyID)
	if err != nil {
		respondServiceError(c, err, "Failed to assess property risk")
		return
	}

	c.JSON(http.StatusOK, gin.H{"property_id": q.PropertyID, "risk_assessment": assessment})
}

// PropertyRequest is the body of the property scoring endpoints.
type PropertyRequest struct {
	PropertyID int64 `json:"property_id" binding:"required,gt=0"`
}

// UpdatePropertyPricing handles POST /api/v1/ai/update-property-pricing.
func (h *AIHandler) UpdatePropertyPricing(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "property_id required")
		return
	}

	outcome, err := h.ai.UpdatePropertyPricing(c.Request.Context(), req.PropertyID)
	if err != nil {
		respondServiceError(c, err, "Failed to update pricing")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// ForecastsResponse carries forecasts keyed by horizon, e.g. "3_month".
type ForecastsResponse struct {
	Forecasts  map[string]scoring.Forecast `json:"forecasts"`
	PropertyID int64                       `json:"property_id"`
}

// UpdatePropertyForecasts handles POST /api/v1/ai/update-property-forecasts.
func (h *AIHandler) UpdatePropertyForecasts(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "property_id required")
		return
	}

	forecasts, err := h.ai.UpdatePropertyForecasts(c.Request.Context(), req.PropertyID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate forecasts")
		return
	}

	c.JSON(http.StatusOK, ForecastsResponse{PropertyID: req.PropertyID, Forecasts: forecasts})
}

// PaymentRequest is the body of POST /ai/update-payment-prediction.
type PaymentRequest struct {
	PaymentID int64 `json:"payment_id" binding:"required,gt=0"`
}

// PaymentPredictionResponse reports the stored prediction for a payment.
type PaymentPredictionResponse struct {
	PaymentID              int64   `json:"payment_id"`
	LatePaymentProbability float64 `json:"late_payment_probability"`
	DaysOverduePredicted   int     `json:"days_overdue_predicted"`
	PaymentRiskScore       float64 `json:"payment_risk_score"`
}

// UpdatePaymentPrediction handles POST /api/v1/ai/update-payment-prediction.
// Payments without a tenant answer 200 with skipped set.
func (h *AIHandler) UpdatePaymentPrediction(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "payment_id required")
		return
	}

	outcome, err := h.ai.UpdatePaymentPrediction(c.Request.Context(), req.PaymentID)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment prediction")
		return
	}

	if outcome.Skipped {
		c.JSON(http.StatusOK, gin.H{
			"payment_id": outcome.PaymentID,
			"skipped":    true,
			"message":    "Payment has no tenant",
		})
		return
	}

	c.JSON(http.StatusOK, PaymentPredictionResponse{
		PaymentID:              outcome.PaymentID,
		LatePaymentProbability: outcome.Prediction.LatePaymentProbability,
		DaysOverduePredicted:   outcome.Prediction.DaysOverduePredicted,
		PaymentRiskScore:       outcome.Prediction.RiskScore,
	})
}

// RiskScoresRequest is the body of POST /ai/update-risk-scores. At least one
// id must be present.
type RiskScoresRequest struct {
	TenantID   *int64 `json:"tenant_id" binding:"omitempty,gt=0"`
	PropertyID *int64 `json:"property_id" binding:"omitempty,gt=0"`
}

// RiskScoreResult is one persisted risk score.
type RiskScoreResult struct {
	TenantID   *int64  `json:"tenant_id,omitempty"`
	PropertyID *int64  `json:"property_id,omitempty"`
	RiskLevel  string  `json:"risk_level"`
	RiskScore  float64 `json:"risk_score"`
}

// RiskScoresResponse holds whichever targets were rescored.
type RiskScoresResponse struct {
	Tenant   *RiskScoreResult `json:"tenant,omitempty"`
	Property *RiskScoreResult `json:"property,omitempty"`
}

// UpdateRiskScores handles POST /api/v1/ai/update-risk-scores.
func (h *AIHandler) UpdateRiskScores(c *gin.Context) {
	var req RiskScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, services.ErrNoRiskTarget.Error())
		return
	}

	outcome, err := h.ai.UpdateRiskScores(c.Request.Context(), req.TenantID, req.PropertyID)
	if err != nil {
		respondServiceError(c, err, "Failed to update risk scores")
		return
	}

	var resp RiskScoresResponse
	if outcome.Tenant != nil {
		resp.Tenant = &RiskScoreResult{
			TenantID:  req.TenantID,
			RiskScore: outcome.Tenant.TotalRiskScore,
			RiskLevel: outcome.Tenant.RiskLevel,
		}
	}
	if outcome.Property != nil {
		resp.Property = &RiskScoreResult{
			PropertyID: req.PropertyID,
			RiskScore:  outcome.Property.TotalRiskScore,
			RiskLevel:  outcome.Property.RiskLevel,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// DashboardAnalytics handles GET /api/v1/ai/dashboard-analytics.
func (h *AIHandler) DashboardAnalytics(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AnalyticsQuery binds GET /ai/analytics.
type AnalyticsQuery struct {
	Months int `form:"months" binding:"omitempty,min=1,max=24"`
}

// Analytics handles GET /api/v1/ai/analytics.
func (h *AIHandler) Analytics(c *gin.Context) {
	var q AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid months")
		return
	}

	analytics, err := h.dashboard.Analytics(c.Request.Context(), q.Months)
	if err != nil {
		respondServiceError(c, err, "Failed to load analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// PredictionsQuery binds GET /ai/predictions.
type PredictionsQuery struct {
	ModelType string `form:"model_type" binding:"omitempty,oneof=price_optimization occupancy_forecast payment_prediction risk_assessment"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// Predictions handles GET /api/v1/ai/predictions.
func (h *AIHandler) Predictions(c *gin.Context) {
	var q PredictionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	entries, err := h.ai.Predictions(c.Request.Context(), models.PredictionFilter{ModelType: q.ModelType, Limit: q.Limit})
	if err != nil {
		respondServiceError(c, err, "Failed to list predictions")
		return
	}

	if log := httpctx.GetLogger(c); log != nil {
		log.Debug("Listed predictions", map[string]interface{}{"count": len(entries), "model_type": q.ModelType})
	}

	c.JSON(http.StatusOK, gin.H{"predictions": entries, "count": len(entries)})
}
