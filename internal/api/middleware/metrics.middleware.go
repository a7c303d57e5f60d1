package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
)

// MetricsMiddleware records a count and latency observation per request,
// labeled by method, route template and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
