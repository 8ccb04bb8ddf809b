package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/services"
)

// PaymentHandler handles payment CRUD.
type PaymentHandler struct {
	service services.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	TenantID    *int64     `json:"tenant_id" binding:"omitempty,gt=0"`
	PropertyID  *int64     `json:"property_id" binding:"omitempty,gt=0"`
	Amount      float64    `json:"amount" binding:"gt=0"`
	DueDate     time.Time  `json:"due_date" binding:"required"`
	PaymentDate *time.Time `json:"payment_date"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending paid late overdue"`
}

// PaymentListQuery binds GET /payments.
type PaymentListQuery struct {
	PageQuery
	TenantID   *int64 `form:"tenant_id" binding:"omitempty,gt=0"`
	PropertyID *int64 `form:"property_id" binding:"omitempty,gt=0"`
	Status     string `form:"status" binding:"omitempty,oneof=pending paid late overdue"`
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	p := &models.Payment{
		TenantID:    req.TenantID,
		PropertyID:  req.PropertyID,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		PaymentDate: req.PaymentDate,
		Status:      req.Status,
	}
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		respondServiceError(c, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Get handles GET /api/v1/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load payment")
		return
	}

	c.JSON(http.StatusOK, p)
}

// List handles GET /api/v1/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	var q PaymentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	payments, err := h.service.List(c.Request.Context(), models.PaymentFilter{
		TenantID:   q.TenantID,
		PropertyID: q.PropertyID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments)})
}
