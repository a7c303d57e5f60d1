package session

import (
	"sync"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// Manager orchestrates get/set/clear against the partitioned store and falls
// back to a single process-wide legacy map when no session is supplied. The
// legacy map exists only for callers not yet migrated to session awareness;
// it has no partitioning and no eviction.
type Manager struct {
	store  *Store
	logger logger.Logger

	legacyMu sync.RWMutex
	legacy   map[string]interface{}
}

// NewManager creates a manager over a store bounded to maxSessions partitions.
func NewManager(maxSessions int, log logger.Logger) *Manager {
	return &Manager{
		store:  NewStore(maxSessions),
		logger: log,
		legacy: make(map[string]interface{}),
	}
}

// GetData looks up key for the given session identity. An empty sessionID
// routes to the legacy global cache and never touches any partition. Misses
// are reported through the bool, never as errors.
func (m *Manager) GetData(key, sessionID, companyID, userID string) (interface{}, bool) {
	if sessionID == "" {
		m.legacyMu.RLock()
		value, ok := m.legacy[key]
		m.legacyMu.RUnlock()
		return value, ok
	}

	ctx := NewContext(sessionID, companyID, userID)
	value, ok := m.store.Get(ctx.PartitionKey(), key)
	if ok {
		metrics.RecordCacheOperation("get", "hit")
	} else {
		metrics.RecordCacheOperation("get", "miss")
	}
	return value, ok
}

// SetData stores key=value for the given session identity, lazily creating
// the partition. Same legacy branching as GetData.
func (m *Manager) SetData(key string, value interface{}, sessionID, companyID, userID string) {
	if sessionID == "" {
		m.legacyMu.Lock()
		m.legacy[key] = value
		m.legacyMu.Unlock()
		return
	}

	ctx := NewContext(sessionID, companyID, userID)
	m.store.SetWithContext(ctx, key, value)
	metrics.RecordCacheOperation("set", "success")
}

// DeleteData removes a single key from the caller's partition, or from the
// legacy cache when sessionID is empty. No-op when absent.
func (m *Manager) DeleteData(key, sessionID, companyID, userID string) {
	if sessionID == "" {
		m.legacyMu.Lock()
		delete(m.legacy, key)
		m.legacyMu.Unlock()
		return
	}
	ctx := NewContext(sessionID, companyID, userID)
	m.store.Delete(ctx.PartitionKey(), key)
	metrics.RecordCacheOperation("delete", "success")
}

// ClearSession removes exactly one partition. Other partitions and the legacy
// cache are untouched. Idempotent.
func (m *Manager) ClearSession(sessionID, companyID, userID string) {
	if sessionID == "" {
		return
	}
	ctx := NewContext(sessionID, companyID, userID)
	m.store.Clear(ctx.PartitionKey())
	m.logger.Debug("session partition cleared", "partition", ctx.PartitionKey())
}

// ClearLegacy empties the global fallback cache.
func (m *Manager) ClearLegacy() {
	m.legacyMu.Lock()
	m.legacy = make(map[string]interface{})
	m.legacyMu.Unlock()
}

// CleanupExpiredSessions removes partitions idle longer than ttl and returns
// the number removed.
func (m *Manager) CleanupExpiredSessions(ttl time.Duration) int {
	removed := m.store.CleanupExpired(ttl)
	if removed > 0 {
		m.logger.Info("expired session partitions removed", "count", removed, "ttl", ttl)
	}
	return removed
}

// Items snapshots every key-value pair visible to the given session identity:
// the bound partition's contents, or the legacy cache when sessionID is empty.
func (m *Manager) Items(sessionID, companyID, userID string) map[string]interface{} {
	if sessionID == "" {
		m.legacyMu.RLock()
		defer m.legacyMu.RUnlock()
		out := make(map[string]interface{}, len(m.legacy))
		for k, v := range m.legacy {
			out[k] = v
		}
		return out
	}
	ctx := NewContext(sessionID, companyID, userID)
	return m.store.Items(ctx.PartitionKey())
}

// Keys lists the data keys visible to the given session identity.
func (m *Manager) Keys(sessionID, companyID, userID string) []string {
	if sessionID == "" {
		m.legacyMu.RLock()
		defer m.legacyMu.RUnlock()
		keys := make([]string, 0, len(m.legacy))
		for k := range m.legacy {
			keys = append(keys, k)
		}
		return keys
	}
	ctx := NewContext(sessionID, companyID, userID)
	return m.store.Keys(ctx.PartitionKey())
}

// Stats aggregates store counters with the legacy cache size.
func (m *Manager) Stats() models.SessionStats {
	stats := m.store.Stats()
	m.legacyMu.RLock()
	stats.LegacyKeys = len(m.legacy)
	m.legacyMu.RUnlock()
	return stats
}

// Store exposes the underlying partitioned store for wrappers.
func (m *Manager) Store() *Store {
	return m.store
}
