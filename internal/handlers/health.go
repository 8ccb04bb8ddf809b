package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/httpctx"
)

const (
	// APIVersion is the current version of the API.
	APIVersion = "1.0.0"
	// HealthCheckTimeout bounds the database ping in readiness checks.
	HealthCheckTimeout = 2 * time.Second
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	db        Pinger
	startTime time.Time
	env       string
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db Pinger, env string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
		env:       env,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

// Health handles GET /health.
// It is the liveness check for the container runtime: the process is up and
// gin is serving, so it always answers 200 without touching Postgres or any
// scoring dependency.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Ready handles GET /health/ready.
// Scoring endpoints read and write Postgres on every call, so readiness is
// a database ping bounded by HealthCheckTimeout. Answers 200 with
// database "connected" when the ping succeeds and 503 with "disconnected"
// otherwise; the failure is logged on the request logger.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		// Request-scoped logger set by middleware.Logger
		if log := httpctx.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"timeout": HealthCheckTimeout.String(),
			})
		}
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Database: "disconnected"})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{Status: "ready", Database: "connected"})
}

// Info handles GET /api/v1/info.
// Returns the API version, the ENV the server was started with and the
// process uptime. It sits outside the bearer-protected group so deploy
// tooling can read it without a token.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(time.Since(h.startTime)),
	})
}

// formatUptime renders a duration as "1d 2h 3m 4s", dropping the day part
// when it is zero.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
