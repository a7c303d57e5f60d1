package session

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Wrapper.Lookup when a key is absent. Get
// never returns it; a miss there yields the caller's default.
var ErrKeyNotFound = errors.New("key not found")

// Wrapper adapts the manager to a plain key-value container bound to one
// fixed session context, so legacy code written against a single global map
// can migrate without touching its access patterns. It is an adapter over the
// manager, never a map subtype; two wrappers bound to different contexts can
// share a manager and still never observe each other's entries.
type Wrapper struct {
	manager   *Manager
	sessionID string
	companyID string
	userID    string
}

// NewWrapper binds a wrapper to the given context. Empty identifiers bind the
// legacy global cache.
func NewWrapper(manager *Manager, sessionID, companyID, userID string) *Wrapper {
	return &Wrapper{
		manager:   manager,
		sessionID: sessionID,
		companyID: companyID,
		userID:    userID,
	}
}

// SetContext rebinds the wrapper; subsequent calls use the new identity.
func (w *Wrapper) SetContext(sessionID, companyID, userID string) {
	w.sessionID = sessionID
	w.companyID = companyID
	w.userID = userID
}

// Get returns the value for key, or def when absent.
func (w *Wrapper) Get(key string, def interface{}) interface{} {
	if value, ok := w.manager.GetData(key, w.sessionID, w.companyID, w.userID); ok {
		return value
	}
	return def
}

// Lookup is the indexer read: it fails with ErrKeyNotFound when the key is
// absent, matching conventional map-indexing semantics.
func (w *Wrapper) Lookup(key string) (interface{}, error) {
	if value, ok := w.manager.GetData(key, w.sessionID, w.companyID, w.userID); ok {
		return value, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

// Put is the indexer write.
func (w *Wrapper) Put(key string, value interface{}) {
	w.manager.SetData(key, value, w.sessionID, w.companyID, w.userID)
}

// Remove deletes a single key from the bound partition. No-op when absent.
func (w *Wrapper) Remove(key string) {
	w.manager.DeleteData(key, w.sessionID, w.companyID, w.userID)
}

// Contains reports whether key exists in the bound partition.
func (w *Wrapper) Contains(key string) bool {
	_, ok := w.manager.GetData(key, w.sessionID, w.companyID, w.userID)
	return ok
}

// Clear empties the bound partition only.
func (w *Wrapper) Clear() {
	if w.sessionID == "" {
		w.manager.ClearLegacy()
		return
	}
	w.manager.ClearSession(w.sessionID, w.companyID, w.userID)
}

// Keys lists the keys of the bound partition.
func (w *Wrapper) Keys() []string {
	return w.manager.Keys(w.sessionID, w.companyID, w.userID)
}

// Values lists the values of the bound partition.
func (w *Wrapper) Values() []interface{} {
	items := w.manager.Items(w.sessionID, w.companyID, w.userID)
	values := make([]interface{}, 0, len(items))
	for _, v := range items {
		values = append(values, v)
	}
	return values
}

// Items snapshots the bound partition's contents.
func (w *Wrapper) Items() map[string]interface{} {
	return w.manager.Items(w.sessionID, w.companyID, w.userID)
}

// Len reports the number of keys in the bound partition.
func (w *Wrapper) Len() int {
	return len(w.manager.Items(w.sessionID, w.companyID, w.userID))
}
