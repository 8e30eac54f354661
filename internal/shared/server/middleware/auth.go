package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// APIKeyHeader carries the shared secret on every protected request.
const APIKeyHeader = "X-API-Key"

// Auth checks the shared secret header. When no secret is configured the
// middleware rejects everything, so the API never runs open by accident.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if secret == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "API secret not configured", nil)
			return
		}

		provided := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if provided == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing API key", nil)
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid API key", nil)
			return
		}

		c.Next()
	}
}
