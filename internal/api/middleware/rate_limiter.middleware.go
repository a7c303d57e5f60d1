package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
)

const (
	// anonymousTenant buckets unidentified callers together.
	anonymousTenant = "anonymous"

	// rateLimitPerMinute caps requests per tenant per one-minute window.
	rateLimitPerMinute int64 = 1000
)

// RateLimiter throttles per tenant over fixed one-minute windows. Counters
// live in the shared cache so the limit holds across replicas; on the
// in-memory fallback it degrades to a per-process limit.
func RateLimiter(reportCache cache.ReportCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := c.GetString("tenant_id")
		if tenant == "" {
			tenant = anonymousTenant
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("rate_limit:%s:%d", tenant, window)

		var used int64
		if raw, err := reportCache.Get(c.Request.Context(), key); err == nil {
			used, _ = strconv.ParseInt(string(raw), 10, 64)
		}

		c.Header("X-Rate-Limit-Limit", strconv.FormatInt(rateLimitPerMinute, 10))
		c.Header("X-Rate-Limit-Reset", strconv.FormatInt((window+1)*60, 10))

		if used >= rateLimitPerMinute {
			c.Header("X-Rate-Limit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":      "error",
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		used++
		// Counter writes are best effort; a failed write undercounts one window.
		_ = reportCache.Set(c.Request.Context(), key, strconv.FormatInt(used, 10), 2*time.Minute)
		c.Header("X-Rate-Limit-Remaining", strconv.FormatInt(rateLimitPerMinute-used, 10))

		c.Next()
	}
}
