package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/services"
)

// TenantHandler handles tenant CRUD and behaviour records.
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a TenantHandler.
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenantRequest is the body of POST /tenants.
type CreateTenantRequest struct {
	FirstName               string  `json:"first_name" binding:"required,max=100"`
	LastName                string  `json:"last_name" binding:"max=100"`
	Email                   string  `json:"email" binding:"required,email"`
	Phone                   string  `json:"phone" binding:"max=30"`
	PropertyID              *int64  `json:"property_id" binding:"omitempty,gt=0"`
	Active                  *bool   `json:"active"`
	BudgetMin               float64 `json:"budget_min" binding:"gte=0"`
	BudgetMax               float64 `json:"budget_max" binding:"gte=0"`
	PreferredPropertyType   string  `json:"preferred_property_type" binding:"max=50"`
	PreferredLocation       string  `json:"preferred_location" binding:"max=200"`
	CreditScore             int     `json:"credit_score" binding:"gte=0,lte=850"`
	PaymentReliabilityScore float64 `json:"payment_reliability_score" binding:"gte=0,lte=10"`
}

// TenantListQuery binds GET /tenants.
type TenantListQuery struct {
	PageQuery
	Active     *bool  `form:"active"`
	PropertyID *int64 `form:"property_id" binding:"omitempty,gt=0"`
}

// CreateBehaviorRequest is the body of POST /tenants/:id/behaviors.
type CreateBehaviorRequest struct {
	BehaviorType string          `json:"behavior_type" binding:"required,max=50"`
	Data         json.RawMessage `json:"data"`
	RiskScore    float64         `json:"risk_score" binding:"gte=0,lte=10"`
	Timestamp    *time.Time      `json:"timestamp"`
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	t := &models.Tenant{
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		PropertyID:              req.PropertyID,
		Active:                  req.Active == nil || *req.Active,
		BudgetMin:               req.BudgetMin,
		BudgetMax:               req.BudgetMax,
		PreferredPropertyType:   req.PreferredPropertyType,
		PreferredLocation:       req.PreferredLocation,
		CreditScore:             req.CreditScore,
		PaymentReliabilityScore: req.PaymentReliabilityScore,
	}
	if err := h.service.Create(c.Request.Context(), t); err != nil {
		respondServiceError(c, err, "Failed to create tenant")
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Get handles GET /api/v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load tenant")
		return
	}

	c.JSON(http.StatusOK, t)
}

// List handles GET /api/v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	var q TenantListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	tenants, err := h.service.List(c.Request.Context(), models.TenantFilter{
		Active:     q.Active,
		PropertyID: q.PropertyID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to list tenants")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants, "count": len(tenants)})
}

// CreateBehavior handles POST /api/v1/tenants/:id/behaviors.
func (h *TenantHandler) CreateBehavior(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CreateBehaviorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	b := &models.TenantBehavior{
		TenantID:     id,
		BehaviorType: req.BehaviorType,
		Data:         req.Data,
		RiskScore:    req.RiskScore,
	}
	if req.Timestamp != nil {
		b.Timestamp = *req.Timestamp
	}
	if err := h.service.RecordBehavior(c.Request.Context(), b); err != nil {
		respondServiceError(c, err, "Failed to record behavior")
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ListBehaviors handles GET /api/v1/tenants/:id/behaviors.
func (h *TenantHandler) ListBehaviors(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	behaviors, err := h.service.Behaviors(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to list behaviors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"behaviors": behaviors, "count": len(behaviors)})
}
