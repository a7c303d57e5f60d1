package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetMissIsNotAnError(t *testing.T) {
	s := NewStore(10)
	value, ok := s.Get("nope", "key")
	assert.False(t, ok)
	assert.Nil(t, value)

	s.Set("p1", "k", "v")
	_, ok = s.Get("p1", "other")
	assert.False(t, ok)
}

func TestStore_SetThenGet(t *testing.T) {
	s := NewStore(10)
	s.Set("p1", "k", "v")
	value, ok := s.Get("p1", "k")
	require.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestStore_CapacityBound(t *testing.T) {
	const max = 3
	s := NewStore(max)
	for i := 0; i < max+1; i++ {
		s.Set(fmt.Sprintf("p%d", i), "k", i)
	}
	assert.Equal(t, max, s.Stats().ActiveSessions)

	// Inserting many more never pushes the store past its bound.
	for i := 0; i < 20; i++ {
		s.Set(fmt.Sprintf("extra%d", i), "k", i)
	}
	assert.Equal(t, max, s.Stats().ActiveSessions)
}

// Eviction is true LRU, not insertion order: an access refreshes a
// partition's position in the eviction order, so a hot partition survives
// newcomers. This test pins that behavior.
func TestStore_EvictionIsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(3)
	s.Set("a", "k", 1)
	s.Set("b", "k", 2)
	s.Set("c", "k", 3)

	// Touch "a" so "b" becomes the least recently used.
	_, ok := s.Get("a", "k")
	require.True(t, ok)

	s.Set("d", "k", 4)

	_, ok = s.Get("a", "k")
	assert.True(t, ok, "recently used partition must survive")
	_, ok = s.Get("b", "k")
	assert.False(t, ok, "least recently used partition must be evicted")
	_, ok = s.Get("d", "k")
	assert.True(t, ok)
	assert.Equal(t, int64(1), s.Stats().Evictions)
}

func TestStore_InvalidCapacityFallsBackToDefault(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < DefaultMaxSessions+5; i++ {
		s.Set(fmt.Sprintf("p%d", i), "k", i)
	}
	assert.Equal(t, DefaultMaxSessions, s.Stats().ActiveSessions)
}

func TestStore_KeysAndDelete(t *testing.T) {
	s := NewStore(10)
	s.Set("p1", "a", 1)
	s.Set("p1", "b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys("p1"))
	assert.Nil(t, s.Keys("absent"))

	// Delete removes the key but keeps the partition alive.
	s.Delete("p1", "a")
	assert.ElementsMatch(t, []string{"b"}, s.Keys("p1"))
	assert.Equal(t, 1, s.Stats().ActiveSessions)

	// Absent partition or key is a no-op.
	s.Delete("absent", "a")
	s.Delete("p1", "a")
}

func TestStore_ClearIdempotent(t *testing.T) {
	s := NewStore(10)
	s.Set("p1", "k", "v")
	s.Clear("p1")
	before := s.Stats().ActiveSessions

	s.Clear("p1")
	s.Clear("never-existed")
	assert.Equal(t, before, s.Stats().ActiveSessions)
}

func TestStore_CleanupExpired(t *testing.T) {
	s := NewStore(10)

	stale := NewContext("old", "compA", "user1")
	stale.LastAccessed = time.Now().Add(-2 * time.Hour)
	s.SetWithContext(stale, "k", "v")

	fresh := NewContext("new", "compA", "user1")
	s.SetWithContext(fresh, "k", "v")

	removed := s.CleanupExpired(time.Hour)
	assert.Equal(t, 1, removed)

	stats := s.Stats()
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Equal(t, int64(1), stats.Expirations)

	_, ok := s.Get(fresh.PartitionKey(), "k")
	assert.True(t, ok)
}

func TestStore_StatsCounters(t *testing.T) {
	s := NewStore(10)
	s.Set("p1", "a", 1)
	s.Set("p1", "b", 2)
	s.Set("p2", "a", 3)

	s.Get("p1", "a") // hit
	s.Get("p1", "z") // miss
	s.Get("p9", "a") // miss

	stats := s.Stats()
	assert.Equal(t, 2, stats.ActiveSessions)
	assert.Equal(t, 3, stats.TotalKeys)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(2), stats.Creates)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(8)
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			partition := fmt.Sprintf("p%d", g%4)
			for i := 0; i < 200; i++ {
				s.Set(partition, fmt.Sprintf("k%d", i%10), i)
				s.Get(partition, fmt.Sprintf("k%d", i%10))
			}
		}(g)
	}
	wg.Wait()

	// The bound holds under contention.
	assert.LessOrEqual(t, s.Stats().ActiveSessions, 8)
}
