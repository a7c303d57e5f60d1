package cache

import (
	"context"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// ReportCache distributes computed shortage reports across replicas and backs
// the per-tenant rate limiter. The in-process session store stays the source
// of truth for per-session data; this layer is shared, best-effort state.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	CacheReport(ctx context.Context, partitionKey string, report *models.ShortageReport, ttl time.Duration) error
	GetCachedReport(ctx context.Context, partitionKey string) (*models.ShortageReport, error)

	HealthCheck(ctx context.Context) error
}

// New connects to a single-node Valkey/Redis instance when addr is set and
// reachable. When the dial fails it starts on the in-memory fallback and
// swaps to the real client in the background once it becomes available. An
// empty addr pins the in-memory cache permanently.
func New(addr string, db int, password string, defaultTTL time.Duration, log logger.Logger) ReportCache {
	if addr == "" {
		return NewNoopReportCache(log)
	}

	dial := func() (ReportCache, error) {
		return NewValkeySingle(addr, db, password, defaultTTL, log)
	}
	if real, err := dial(); err == nil {
		return real
	}
	return newAutoSwapCache(NewNoopReportCache(log), log, dial)
}
