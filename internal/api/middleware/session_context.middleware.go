// internal/api/middleware/session_context.middleware.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// Header names carrying the caller's identity, set by the upstream gateway.
const (
	SessionHeaderName = "X-Session-ID"
	TenantHeaderName  = "X-Tenant-ID"
	UserHeaderName    = "X-User-ID"
)

// SessionContext extracts the tenant/user/session triple from request headers
// and stores it in the Gin context for handlers. A caller that identifies a
// tenant or user but supplies no session gets one minted; holding requests
// with identity but no session on the legacy global partition would let
// tenants observe each other's cached data.
func SessionContext(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeaderName)
		tenantID := c.GetHeader(TenantHeaderName)
		userID := c.GetHeader(UserHeaderName)

		if sessionID == "" && (tenantID != "" || userID != "") {
			sessionID = uuid.NewString()
			c.Header(SessionHeaderName, sessionID)
			log.Debug("minted session for identified caller",
				"session_id", sessionID, "tenant_id", tenantID, "user_id", userID)
		}

		c.Set("session_id", sessionID)
		c.Set("tenant_id", tenantID)
		c.Set("user_id", userID)

		c.Next()
	}
}
