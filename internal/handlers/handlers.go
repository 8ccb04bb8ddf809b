package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Havertz69/rental-app/internal/errors"
	"github.com/Havertz69/rental-app/internal/services"
)

// PageQuery is the common limit/offset pair for list endpoints.
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// respondBindError answers a failed ShouldBind call.
func respondBindError(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, message, nil)
}

// respondServiceError maps service sentinels to status codes. Anything
// unrecognised is a 500 with fallback as the client message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound),
		errors.Is(err, services.ErrTenantNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrMaintenanceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoRiskTarget):
		apierrors.BadRequest(c, services.ErrNoRiskTarget.Error(), nil)
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Invalid or expired token")
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}

// idParam parses the :id path segment as a positive integer.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid id", map[string]interface{}{"id": c.Param("id")})
		return 0, false
	}
	return id, true
}
