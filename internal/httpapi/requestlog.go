package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the per-request correlation id back to the caller.
const HeaderRequestID = "X-Request-Id"

// excludedHeaders are never logged; they carry credentials.
var excludedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"X-Api-Key":     true,
}

// RequestLogger logs one line per request and one per response, tagging both
// with a generated request id and masking credential-bearing headers.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger == nil {
			c.Next()
			return
		}
		start := time.Now()
		requestID := uuid.NewString()
		c.Header(HeaderRequestID, requestID)

		logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "request received",
			slog.String("request.id", requestID),
			slog.String("http.method", c.Request.Method),
			slog.String("http.path", c.Request.URL.Path),
			slog.String("http.client_ip", c.ClientIP()),
			slog.String("http.user_agent", c.Request.UserAgent()),
			slog.Any("http.headers", sanitizedHeaders(c)),
		)

		c.Next()

		logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "request completed",
			slog.String("request.id", requestID),
			slog.String("http.method", c.Request.Method),
			slog.String("http.path", c.Request.URL.Path),
			slog.Int("http.status", c.Writer.Status()),
			slog.Duration("http.duration", time.Since(start)),
		)
	}
}

func sanitizedHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if excludedHeaders[name] {
			headers[name] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}
	return headers
}
