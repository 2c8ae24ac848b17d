package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/renanmachad/test-backend-thera-consulting/internal/shared/errors"
)

// APIKeyGuard rejects requests that do not present the configured static key.
// The key arrives via `Authorization: Bearer <key>`, `Authorization: ApiKey
// <key>`, or the `x-api-key` header. The key itself is injected at startup,
// never read from the environment here.
func APIKeyGuard(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "API key is required")
			return
		}
		if apiKey == "" {
			abortUnauthorized(c, "API key not configured on server")
			return
		}
		if token != apiKey {
			abortUnauthorized(c, "Invalid API key")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.GetHeader("x-api-key")
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found {
		return ""
	}
	switch scheme {
	case "Bearer", "ApiKey":
		return token
	default:
		return ""
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(detail))
	c.Abort()
}
