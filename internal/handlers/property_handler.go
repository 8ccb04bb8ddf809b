package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/models"
	"github.com/Havertz69/rental-app/internal/services"
)

// PropertyHandler handles property CRUD.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// CreatePropertyRequest is the body of POST /properties.
type CreatePropertyRequest struct {
	Name          string  `json:"name" binding:"required,max=200"`
	PropertyType  string  `json:"property_type" binding:"required,max=50"`
	Location      string  `json:"location" binding:"required,max=200"`
	Price         float64 `json:"price" binding:"gt=0"`
	Bedrooms      int     `json:"bedrooms" binding:"gte=0"`
	Bathrooms     int     `json:"bathrooms" binding:"gte=0"`
	SquareFeet    int     `json:"square_feet" binding:"gte=0"`
	Available     *bool   `json:"available"`
	OccupancyRate float64 `json:"occupancy_rate" binding:"gte=0,lte=1"`
}

// PropertyListQuery binds GET /properties.
type PropertyListQuery struct {
	PageQuery
	Available    *bool  `form:"available"`
	Location     string `form:"location"`
	PropertyType string `form:"property_type"`
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	p := &models.Property{
		Name:          req.Name,
		PropertyType:  req.PropertyType,
		Location:      req.Location,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		Available:     req.Available == nil || *req.Available,
		OccupancyRate: req.OccupancyRate,
	}
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		respondServiceError(c, err, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load property")
		return
	}

	c.JSON(http.StatusOK, p)
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	var q PropertyListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	props, err := h.service.List(c.Request.Context(), models.PropertyFilter{
		Available:    q.Available,
		Location:     q.Location,
		PropertyType: q.PropertyType,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": props, "count": len(props)})
}
