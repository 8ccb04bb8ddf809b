package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/httpctx"
	"github.com/Havertz69/rental-app/internal/logger"
)

// Logger stores a request-scoped child logger on the context and writes one
// access log line per request, levelled by status code.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLogger := log.WithRequestID(httpctx.GetRequestID(c))
		c.Set(httpctx.LoggerKey, requestLogger)

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		}
		if fields["path"] == "" {
			fields["path"] = c.Request.URL.Path
		}
		if claims := GetClaims(c); claims != nil {
			fields["user_id"] = claims.Subject
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= 500:
			requestLogger.Error("Request completed with server error", nil, fields)
		case status >= 400:
			requestLogger.Warn("Request completed with client error", fields)
		default:
			requestLogger.Info("Request completed", fields)
		}
	}
}
