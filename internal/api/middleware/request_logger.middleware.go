package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// RequestLogger emits one structured log entry per request, carrying the
// session/tenant identity resolved by SessionContext. 4xx log at warn, 5xx
// at error.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"session_id", c.GetString("session_id"),
			"tenant_id", c.GetString("tenant_id"),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}
