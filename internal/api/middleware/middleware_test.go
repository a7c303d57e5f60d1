package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makimaki1006/shift-suite-sub009/internal/config"
	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestSessionContext_PassesThroughHeaders(t *testing.T) {
	r := newRouter()
	r.Use(SessionContext(logger.New("error")))
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session_id": c.GetString("session_id"),
			"tenant_id":  c.GetString("tenant_id"),
			"user_id":    c.GetString("user_id"),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SessionHeaderName, "sess1")
	req.Header.Set(TenantHeaderName, "compA")
	req.Header.Set(UserHeaderName, "user1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sess1")
	assert.Contains(t, w.Body.String(), "compA")
}

func TestSessionContext_MintsSessionForIdentifiedCaller(t *testing.T) {
	r := newRouter()
	r.Use(SessionContext(logger.New("error")))
	var captured string
	r.GET("/probe", func(c *gin.Context) {
		captured = c.GetString("session_id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(TenantHeaderName, "compA")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotEmpty(t, captured, "a session must be minted for an identified caller")
	assert.Equal(t, captured, w.Header().Get(SessionHeaderName))
}

func TestSessionContext_AnonymousStaysSessionless(t *testing.T) {
	r := newRouter()
	r.Use(SessionContext(logger.New("error")))
	var captured string
	r.GET("/probe", func(c *gin.Context) {
		captured = c.GetString("session_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Empty(t, captured)
	assert.Empty(t, w.Header().Get(SessionHeaderName))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	r := newRouter()
	r.Use(RateLimiter(cache.NewNoopReportCache(logger.New("error"))))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("X-Rate-Limit-Limit"))
	assert.Equal(t, "999", w.Header().Get("X-Rate-Limit-Remaining"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newRouter()
	r.Use(CORSMiddleware(config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
}
