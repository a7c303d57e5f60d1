package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/internal/config"
)

const defaultCORSMaxAge = 43200 // 12 hours

// CORSMiddleware answers cross-origin requests from dashboard clients
// according to the configured allow lists. Preflight requests short-circuit
// with 204.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowMethods := strings.Join(cfg.AllowedMethods, ", ")
	if allowMethods == "" {
		allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	allowHeaders := strings.Join(cfg.AllowedHeaders, ", ")
	if allowHeaders == "" {
		allowHeaders = "Origin, Content-Type, Accept, Authorization, X-Tenant-ID, X-Session-ID, X-User-ID"
	}
	exposeHeaders := strings.Join(cfg.ExposedHeaders, ", ")
	if exposeHeaders == "" {
		exposeHeaders = "X-Rate-Limit-Limit, X-Rate-Limit-Remaining, X-Rate-Limit-Reset, X-Session-ID"
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultCORSMaxAge
	}

	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); originAllowed(origin, cfg.AllowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Expose-Headers", exposeHeaders)
		c.Header("Access-Control-Max-Age", strconv.Itoa(maxAge))
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// originAllowed matches the origin against the allow list. "*" allows any
// origin and "*.example.com" allows subdomains. An empty list permits only
// local development origins.
func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
	}
	for _, a := range allowed {
		switch {
		case a == "*", a == origin:
			return true
		case strings.HasPrefix(a, "*.") && strings.HasSuffix(origin, strings.TrimPrefix(a, "*")):
			return true
		}
	}
	return false
}
