package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Havertz69/rental-app/internal/errors"
	"github.com/Havertz69/rental-app/internal/middleware"
	"github.com/Havertz69/rental-app/internal/services"
)

// AuthHandler issues bearer tokens and reports the caller.
type AuthHandler struct {
	auth services.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Token handles POST /api/v1/auth/token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, token)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		apierrors.Unauthorized(c, "Missing bearer token")
		return
	}

	user, err := h.auth.Me(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, user)
}
