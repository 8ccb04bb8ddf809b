package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/services"
)

// MaintenanceHandler handles maintenance request CRUD.
type MaintenanceHandler struct {
	service services.MaintenanceService
}

// NewMaintenanceHandler creates a MaintenanceHandler.
func NewMaintenanceHandler(service services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// CreateMaintenanceRequest is the body of POST /maintenance.
type CreateMaintenanceRequest struct {
	TenantID         *int64 `json:"tenant_id" binding:"omitempty,gt=0"`
	PropertyID       *int64 `json:"property_id" binding:"omitempty,gt=0"`
	IssueDescription string `json:"issue_description" binding:"required,max=2000"`
	Status           string `json:"status" binding:"omitempty,oneof=submitted in_progress completed cancelled"`
}

// MaintenanceListQuery binds GET /maintenance.
type MaintenanceListQuery struct {
	PageQuery
	TenantID   *int64 `form:"tenant_id" binding:"omitempty,gt=0"`
	PropertyID *int64 `form:"property_id" binding:"omitempty,gt=0"`
	Status     string `form:"status" binding:"omitempty,oneof=submitted in_progress completed cancelled"`
}

// Create handles POST /api/v1/maintenance.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	m := &models.MaintenanceRequest{
		TenantID:         req.TenantID,
		PropertyID:       req.PropertyID,
		IssueDescription: req.IssueDescription,
		Status:           req.Status,
	}
	if err := h.service.Create(c.Request.Context(), m); err != nil {
		respondServiceError(c, err, "Failed to create maintenance request")
		return
	}

	c.JSON(http.StatusCreated, m)
}

// Get handles GET /api/v1/maintenance/:id.
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load maintenance request")
		return
	}

	c.JSON(http.StatusOK, m)
}

// List handles GET /api/v1/maintenance.
func (h *MaintenanceHandler) List(c *gin.Context) {
	var q MaintenanceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	requests, err := h.service.List(c.Request.Context(), models.MaintenanceFilter{
		TenantID:   q.TenantID,
		PropertyID: q.PropertyID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to list maintenance requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"maintenance_requests": requests, "count": len(requests)})
}
