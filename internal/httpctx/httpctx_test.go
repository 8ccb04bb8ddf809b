package httpctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Havertz69/rental-app/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAccessors_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Nil(t, GetLogger(c))

	fallback := logger.Nop()
	assert.Same(t, fallback, LoggerOr(c, fallback))
}

func TestAccessors_Set(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	log := logger.Nop()

	c.Set(RequestIDKey, "req-1")
	c.Set(LoggerKey, log)

	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Same(t, log, GetLogger(c))
	assert.Same(t, log, LoggerOr(c, logger.Nop()))
}

func TestAccessors_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set(RequestIDKey, 42)
	c.Set(LoggerKey, "not a logger")

	assert.Empty(t, GetRequestID(c))
	assert.Nil(t, GetLogger(c))
}
