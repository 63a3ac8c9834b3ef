package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextAdminID     = "adminID"
	ContextUsername    = "username"
	ContextDisplayName = "displayName"
	ContextRole        = "role"
)

// OptionalAuth parses a bearer token when one is present and stores the
// admin identity in the request context. An absent or invalid token just
// leaves the context unauthenticated; the per-action gate decides later
// whether authentication is required.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextAdminID, claims.AdminID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextDisplayName, claims.DisplayName)
	c.Set(ContextRole, claims.Role)
}

// IsAuthenticated reports whether the auth middleware stored an identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := c.Get(ContextAdminID)
	return ok
}

// DisplayNameFromContext returns the authenticated admin's display name.
func DisplayNameFromContext(c *gin.Context) string {
	if v, ok := c.Get(ContextDisplayName); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
