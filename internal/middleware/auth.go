package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Havertz69/rental-app/internal/errors"
	"github.com/Havertz69/rental-app/internal/services"
)

// ClaimsKey is the context key for verified token claims.
const ClaimsKey = "auth_claims"

// TokenParser verifies a bearer token.
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// claims on the context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apperrors.Unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			apperrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireStaff rejects callers whose token lacks the staff flag. It must run
// after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			apperrors.Unauthorized(c, "Missing bearer token")
			return
		}
		if !claims.IsStaff {
			apperrors.Forbidden(c, "Staff access required")
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified claims, or nil on unauthenticated routes.
func GetClaims(c *gin.Context) *services.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}
