package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Havertz69/rental-app/internal/errors"
	"github.com/Havertz69/rental-app/internal/httpctx"
	"github.com/Havertz69/rental-app/internal/logger"
)

// Recovery turns a panic into a logged 500 response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID := httpctx.GetRequestID(c)

				httpctx.LoggerOr(c, log).Error("Panic recovered", fmt.Errorf("panic: %v", r), map[string]interface{}{
					"request_id": requestID,
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"stack":      string(debug.Stack()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: apperrors.ErrorDetail{
						Code:      apperrors.ErrInternalServer,
						Message:   "An unexpected error occurred",
						RequestID: requestID,
					},
				})
			}
		}()

		c.Next()
	}
}
