package cache

import (
	"context"
	"sync"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// redialInterval is how often the background connector retries the real node.
const redialInterval = 5 * time.Second

// autoSwapCache serves from a fallback implementation while a background
// goroutine keeps dialing the real Valkey node; the first successful dial
// swaps the active implementation and ends the loop. Calls always delegate
// to whichever implementation is active at that moment.
type autoSwapCache struct {
	mu      sync.RWMutex
	current ReportCache
	logger  logger.Logger
	stopCh  chan struct{}
}

func newAutoSwapCache(fallback ReportCache, log logger.Logger, dial func() (ReportCache, error)) *autoSwapCache {
	a := &autoSwapCache{
		current: fallback,
		logger:  log,
		stopCh:  make(chan struct{}),
	}
	go a.redialLoop(dial)
	return a
}

func (a *autoSwapCache) redialLoop(dial func() (ReportCache, error)) {
	ticker := time.NewTicker(redialInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			real, err := dial()
			if err != nil {
				a.logger.Warn("Valkey connection attempt failed; will retry", "error", err)
				continue
			}
			a.mu.Lock()
			a.current = real
			a.mu.Unlock()
			a.logger.Info("Valkey connection established; switched from in-memory fallback")
			return
		}
	}
}

// Stop ends the background connector without touching the active cache.
func (a *autoSwapCache) Stop() { close(a.stopCh) }

func (a *autoSwapCache) active() ReportCache {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *autoSwapCache) Get(ctx context.Context, key string) ([]byte, error) {
	return a.active().Get(ctx, key)
}

func (a *autoSwapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return a.active().Set(ctx, key, value, ttl)
}

func (a *autoSwapCache) Delete(ctx context.Context, key string) error {
	return a.active().Delete(ctx, key)
}

func (a *autoSwapCache) CacheReport(ctx context.Context, partitionKey string, report *models.ShortageReport, ttl time.Duration) error {
	return a.active().CacheReport(ctx, partitionKey, report, ttl)
}

func (a *autoSwapCache) GetCachedReport(ctx context.Context, partitionKey string) (*models.ShortageReport, error) {
	return a.active().GetCachedReport(ctx, partitionKey)
}

func (a *autoSwapCache) HealthCheck(ctx context.Context) error {
	return a.active().HealthCheck(ctx)
}
