package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// noopReportCache is the process-local stand-in for ReportCache used when no
// external Valkey node is configured or reachable. Entries live in one map,
// are never shared across replicas, ignore TTLs, and vanish on restart.
type noopReportCache struct {
	mu     sync.RWMutex
	m      map[string][]byte
	logger logger.Logger
}

func NewNoopReportCache(log logger.Logger) ReportCache {
	log.Warn("shared report cache unavailable; running on in-memory fallback")
	return &noopReportCache{m: make(map[string][]byte), logger: log}
}

func (n *noopReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	n.mu.RLock()
	b, ok := n.m[key]
	n.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return b, nil
}

func (n *noopReportCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.m[key] = b
	n.mu.Unlock()
	return nil
}

func (n *noopReportCache) Delete(ctx context.Context, key string) error {
	n.mu.Lock()
	delete(n.m, key)
	n.mu.Unlock()
	return nil
}

func (n *noopReportCache) CacheReport(ctx context.Context, partitionKey string, report *models.ShortageReport, ttl time.Duration) error {
	return n.Set(ctx, reportKey(partitionKey), report, ttl)
}

func (n *noopReportCache) GetCachedReport(ctx context.Context, partitionKey string) (*models.ShortageReport, error) {
	b, err := n.Get(ctx, reportKey(partitionKey))
	if err != nil {
		return nil, err
	}
	var report models.ShortageReport
	if err := json.Unmarshal(b, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// HealthCheck returns an error to indicate no external Valkey connectivity.
func (n *noopReportCache) HealthCheck(ctx context.Context) error {
	return fmt.Errorf("valkey noop cache in use (external cache not connected)")
}
