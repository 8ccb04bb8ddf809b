// Package httpctx holds the values middleware stores on a gin context and the
// accessors handlers use to read them back.
package httpctx

import (
	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/logger"
)

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey = "request_id"
	// LoggerKey is the context key for the request-scoped logger.
	LoggerKey = "logger"
)

// GetRequestID returns the request ID, or "" when none is set.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetLogger returns the request logger, or nil when none is set.
func GetLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if log, ok := v.(*logger.Logger); ok {
			return log
		}
	}
	return nil
}

// LoggerOr returns the request logger, falling back to log.
func LoggerOr(c *gin.Context, log *logger.Logger) *logger.Logger {
	if l := GetLogger(c); l != nil {
		return l
	}
	return log
}
