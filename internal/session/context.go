package session

import (
	"fmt"
	"time"
)

const (
	// GlobalPartitionKey identifies the legacy, non-partitioned namespace used
	// when a caller supplies no session. Deprecated escape hatch; new callers
	// must always provide a session context.
	GlobalPartitionKey = "global"

	noCompanyPlaceholder = "no_company"
	noUserPlaceholder    = "no_user"
)

// Context identifies a tenant+user+session triple. It is a value type,
// constructed fresh on every access; only LastAccessed mutates afterwards.
type Context struct {
	SessionID    string
	CompanyID    string
	UserID       string
	CreatedAt    time.Time
	LastAccessed time.Time
}

// NewContext builds a context for the given identifiers. All three empty
// represents the "no session" legacy case.
func NewContext(sessionID, companyID, userID string) *Context {
	now := time.Now()
	return &Context{
		SessionID:    sessionID,
		CompanyID:    companyID,
		UserID:       userID,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// PartitionKey derives the cache partition for this context. Deterministic:
// identical triples always map to the same key, distinct triples never collide.
func (c *Context) PartitionKey() string {
	if c.SessionID == "" {
		return GlobalPartitionKey
	}
	company := c.CompanyID
	if company == "" {
		company = noCompanyPlaceholder
	}
	user := c.UserID
	if user == "" {
		user = noUserPlaceholder
	}
	return fmt.Sprintf("%s|%s|%s", company, user, c.SessionID)
}

// Touch refreshes LastAccessed. Advisory for TTL cleanup; last write wins
// under concurrent access.
func (c *Context) Touch() {
	c.LastAccessed = time.Now()
}
