package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContext_PartitionKey(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		companyID string
		userID    string
		want      string
	}{
		{"no session is global", "", "compA", "user1", "global"},
		{"full triple", "sess1", "compA", "user1", "compA|user1|sess1"},
		{"missing company", "sess1", "", "user1", "no_company|user1|sess1"},
		{"missing user", "sess1", "compA", "", "compA|no_user|sess1"},
		{"session only", "sess1", "", "", "no_company|no_user|sess1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.sessionID, tt.companyID, tt.userID)
			assert.Equal(t, tt.want, ctx.PartitionKey())
		})
	}
}

func TestContext_PartitionKeyDeterministic(t *testing.T) {
	a := NewContext("s", "c", "u")
	b := NewContext("s", "c", "u")
	assert.Equal(t, a.PartitionKey(), b.PartitionKey())

	// Distinct triples never collide.
	c := NewContext("s", "c2", "u")
	assert.NotEqual(t, a.PartitionKey(), c.PartitionKey())
}

func TestContext_Touch(t *testing.T) {
	ctx := NewContext("s", "c", "u")
	before := ctx.LastAccessed
	time.Sleep(time.Millisecond)
	ctx.Touch()
	assert.True(t, ctx.LastAccessed.After(before))
}
