package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"eduresource-api/internal/shared/response"
	"eduresource-api/pkg/jwt"
)

// ClaimsKey is the gin context key holding the verified *jwt.Claims.
const ClaimsKey = "claims"

// Authenticate verifies the bearer token and stores its claims on the context.
// A missing, malformed, badly signed or expired token is answered with 401.
func Authenticate(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract token from "Bearer <token>"
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.Unauthorized(c, "Unauthorized")
			return
		}

		// 2. Verify signature and lifetime
		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			log.Debug().
				Str("request_id", c.GetString(response.RequestIDKey)).
				Err(err).
				Msg("Rejected bearer token")
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			response.Unauthorized(c, "Unauthorized")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("userID", claims.UserID())
		c.Next()
	}
}

// RequireRole answers 403 unless the authenticated principal holds role.
// It must run after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			response.Unauthorized(c, "Unauthorized")
			return
		}

		if !claims.HasRole(role) {
			log.Info().
				Str("request_id", c.GetString(response.RequestIDKey)).
				Str("user_id", claims.UserID()).
				Str("required_role", role).
				Msg("Access denied")
			response.Forbidden(c, "Forbidden")
			return
		}

		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
