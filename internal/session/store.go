package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/models"
)

// DefaultMaxSessions bounds the store when no explicit capacity is configured.
const DefaultMaxSessions = 100

type partition struct {
	key  string
	ctx  *Context
	data map[string]interface{}
}

// Store is a bounded collection of per-partition key-value maps. Partitions
// are created lazily on first write and evicted least-recently-used when the
// store is at capacity. All structural mutations and counter updates happen
// under one lock so capacity checks, eviction and insertion stay atomic as a
// group.
type Store struct {
	mu          sync.Mutex
	maxSessions int

	// lru front = most recently used; eviction takes the back.
	lru   *list.List
	items map[string]*list.Element

	hits        int64
	misses      int64
	creates     int64
	evictions   int64
	expirations int64
}

// NewStore creates a store holding at most maxSessions partitions. Capacities
// below 1 fall back to DefaultMaxSessions so eviction can always make room.
func NewStore(maxSessions int) *Store {
	if maxSessions < 1 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		maxSessions: maxSessions,
		lru:         list.New(),
		items:       make(map[string]*list.Element),
	}
}

// Get returns the value stored under dataKey in the given partition. A miss
// is a normal outcome reported through the bool, never an error.
func (s *Store) Get(partitionKey, dataKey string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[partitionKey]
	if !ok {
		s.misses++
		return nil, false
	}
	p := elem.Value.(*partition)
	value, ok := p.data[dataKey]
	if !ok {
		s.misses++
		return nil, false
	}
	p.ctx.Touch()
	s.lru.MoveToFront(elem)
	s.hits++
	return value, true
}

// Set stores value under dataKey in the given partition, creating the
// partition if needed. Inserting a new partition at capacity evicts exactly
// one: the least recently used.
func (s *Store) Set(partitionKey, dataKey string, value interface{}) {
	s.set(partitionKey, dataKey, value, nil)
}

// SetWithContext behaves like Set but records the full tenant/user/session
// context for the partition so TTL cleanup and introspection see real
// identity rather than just the derived key.
func (s *Store) SetWithContext(ctx *Context, dataKey string, value interface{}) {
	s.set(ctx.PartitionKey(), dataKey, value, ctx)
}

func (s *Store) set(partitionKey, dataKey string, value interface{}, ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[partitionKey]; ok {
		p := elem.Value.(*partition)
		p.data[dataKey] = value
		p.ctx.Touch()
		s.lru.MoveToFront(elem)
		return
	}

	if s.lru.Len() >= s.maxSessions {
		s.evictOldest()
	}

	if ctx == nil {
		ctx = NewContext("", "", "")
		ctx.SessionID = partitionKey
	}
	p := &partition{
		key:  partitionKey,
		ctx:  ctx,
		data: map[string]interface{}{dataKey: value},
	}
	s.items[partitionKey] = s.lru.PushFront(p)
	s.creates++
}

// evictOldest removes the least-recently-used partition. Caller holds the lock.
func (s *Store) evictOldest() {
	back := s.lru.Back()
	if back == nil {
		return
	}
	p := back.Value.(*partition)
	s.lru.Remove(back)
	delete(s.items, p.key)
	s.evictions++
	metrics.SessionEvictionsTotal.Inc()
}

// Clear removes the partition and its context entirely. Idempotent.
func (s *Store) Clear(partitionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[partitionKey]
	if !ok {
		return
	}
	s.lru.Remove(elem)
	delete(s.items, partitionKey)
}

// CleanupExpired removes every partition whose context has been idle longer
// than ttl and returns the number removed. Invoked by an external periodic
// job; get/set never trigger it.
func (s *Store) CleanupExpired(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, elem := range s.items {
		p := elem.Value.(*partition)
		if time.Since(p.ctx.LastAccessed) > ttl {
			s.lru.Remove(elem)
			delete(s.items, key)
			removed++
		}
	}
	s.expirations += int64(removed)
	return removed
}

// Keys returns the data keys of one partition, or nil when absent.
func (s *Store) Keys(partitionKey string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[partitionKey]
	if !ok {
		return nil
	}
	p := elem.Value.(*partition)
	keys := make([]string, 0, len(p.data))
	for k := range p.data {
		keys = append(keys, k)
	}
	return keys
}

// Items returns a copy of one partition's contents, empty when absent. The
// copy keeps callers from mutating partition state outside the lock.
func (s *Store) Items(partitionKey string) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]interface{})
	if elem, ok := s.items[partitionKey]; ok {
		for k, v := range elem.Value.(*partition).data {
			out[k] = v
		}
	}
	return out
}

// Delete removes a single data key from a partition. No-op when absent.
func (s *Store) Delete(partitionKey, dataKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[partitionKey]; ok {
		delete(elem.Value.(*partition).data, dataKey)
	}
}

// Stats snapshots usage counters across all partitions.
func (s *Store) Stats() models.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalKeys := 0
	for _, elem := range s.items {
		totalKeys += len(elem.Value.(*partition).data)
	}
	return models.SessionStats{
		ActiveSessions: s.lru.Len(),
		TotalKeys:      totalKeys,
		Hits:           s.hits,
		Misses:         s.misses,
		Creates:        s.creates,
		Evictions:      s.evictions,
		Expirations:    s.expirations,
	}
}
