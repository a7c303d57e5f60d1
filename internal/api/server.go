package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/internal/api/handlers"
	"github.com/makimaki1006/shift-suite-sub009/internal/api/middleware"
	"github.com/makimaki1006/shift-suite-sub009/internal/config"
	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/session"
	"github.com/makimaki1006/shift-suite-sub009/internal/shortage"
	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

type Server struct {
	config     *config.Config
	logger     logger.Logger
	cache      cache.ReportCache
	manager    *session.Manager
	shortages  *shortage.Service
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	log logger.Logger,
	reportCache cache.ReportCache,
	manager *session.Manager,
	shortages *shortage.Service,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:    cfg,
		logger:    log,
		cache:     reportCache,
		manager:   manager,
		shortages: shortages,
		router:    router,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware installs the chain in order: recovery, CORS, logging,
// request metrics, identity extraction, rate limiting. Identity must precede
// the rate limiter so limits apply per tenant.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.CORSMiddleware(s.config.CORS))
	s.router.Use(middleware.RequestLogger(s.logger))
	s.router.Use(middleware.MetricsMiddleware())
	s.router.Use(middleware.SessionContext(s.logger))
	s.router.Use(middleware.RateLimiter(s.cache))

	metrics.SetupPrometheusMetrics(s.router)
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.cache, s.logger)
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)

	sessionTTL := time.Duration(s.config.Sessions.TTLMinutes) * time.Minute
	sessionsHandler := handlers.NewSessionsHandler(s.manager, sessionTTL, s.logger)
	shortageHandler := handlers.NewShortageHandler(s.shortages, s.config.Data.DefaultPeriodDays, s.logger)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/shortage/compute", shortageHandler.Compute)
		v1.GET("/shortage/report", shortageHandler.Report)

		v1.GET("/sessions/stats", sessionsHandler.Stats)
		v1.DELETE("/sessions/current", sessionsHandler.ClearCurrent)
		v1.POST("/sessions/cleanup", sessionsHandler.Cleanup)
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("shift-suite core REST API listening", "port", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down shift-suite core")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler returns the underlying Gin engine so tests (or embedders) can mount it.
func (s *Server) Handler() http.Handler {
	return s.router
}
