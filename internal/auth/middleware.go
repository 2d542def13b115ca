package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header carrying a static API key.
const APIKeyHeader = "X-API-Key"

// Middleware returns a Gin middleware enforcing rate limits and
// authentication for the routes it is attached to.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := getClientID(c)
		if m.limiter != nil && !m.limiter.Allow(c.Request.Context(), clientID, m.cfg.RateLimit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "rate limit exceeded",
				},
			})
			c.Abort()
			return
		}

		user, ok := m.authenticateRequest(c)
		if !ok {
			if m.cfg.AllowAnonymous {
				c.Next()
				return
			}

			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "NOT_AUTHENTICATED",
					"message": "authentication required",
				},
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// authenticateRequest tries API key then JWT bearer authentication.
func (m *Manager) authenticateRequest(c *gin.Context) (string, bool) {
	if key := c.GetHeader(APIKeyHeader); key != "" && m.ValidateAPIKey(key) {
		return "api-key", true
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if subject, err := m.ValidateToken(token); err == nil {
			return subject, true
		}
	}

	return "", false
}

// getClientID identifies a client for rate limiting: API key if present,
// otherwise the remote address.
func getClientID(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.ClientIP()
}
