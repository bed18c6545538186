package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequireAuth validates the bearer token and attaches the caller's
// identity to the request context.
func (m *MiddlewareManager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		identity, err := m.auth.ValidateTokenJWT(c, token)
		if err != nil {
			log.Debug().Err(err).Msg("rejected unauthenticated request")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("username", identity.Username)
		c.Set("role", identity.Role)

		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin
// role. Must run after RequireAuth.
func (m *MiddlewareManager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
