package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler(stubPinger{err: errors.New("down")}, "test")
	router := gin.New()
	router.GET("/health", handler.Health)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		status   int
		expected ReadyResponse
	}{
		{
			name:     "database connected",
			status:   http.StatusOK,
			expected: ReadyResponse{Status: "ready", Database: "connected"},
		},
		{
			name:     "database unreachable",
			pingErr:  errors.New("dial tcp: connection refused"),
			status:   http.StatusServiceUnavailable,
			expected: ReadyResponse{Status: "not_ready", Database: "disconnected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(stubPinger{err: tt.pingErr}, "test")
			router := gin.New()
			router.GET("/health/ready", handler.Ready)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.status, w.Code)
			var response ReadyResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expected, response)
		})
	}
}

func TestHealthHandler_Info(t *testing.T) {
	handler := &HealthHandler{
		db:        stubPinger{},
		startTime: time.Now().Add(-26 * time.Hour),
		env:       "production",
	}
	router := gin.New()
	router.GET("/api/v1/info", handler.Info)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response InfoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, APIVersion, response.Version)
	assert.Equal(t, "production", response.Environment)
	assert.Contains(t, response.Uptime, "1d 2h")
}

func TestRouter_HealthRoutesNeedNoToken(t *testing.T) {
	api := newTestAPI()

	for _, path := range []string{"/health", "/health/ready", "/api/v1/info"} {
		w := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds only", 45 * time.Second, "0h 0m 45s"},
		{"minutes and seconds", 5*time.Minute + 30*time.Second, "0h 5m 30s"},
		{"hours minutes seconds", 2*time.Hour + 15*time.Minute + 45*time.Second, "2h 15m 45s"},
		{"with days", 3*24*time.Hour + 5*time.Hour + 30*time.Minute + 15*time.Second, "3d 5h 30m 15s"},
		{"exactly one day", 24 * time.Hour, "1d 0h 0m 0s"},
		{"zero", 0, "0h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatUptime(tt.duration))
		})
	}
}

func BenchmarkFormatUptime(b *testing.B) {
	duration := 3*24*time.Hour + 5*time.Hour + 30*time.Minute + 15*time.Second
	for i := 0; i < b.N; i++ {
		_ = formatUptime(duration)
	}
}
