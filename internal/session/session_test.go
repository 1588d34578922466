package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpilot/claimpilot/internal/models"
)

func testUser() models.Identity {
	return models.Identity{Name: "Demo User One", Email: "demo1@company.com"}
}

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(8, time.Minute)

	sess := m.Create(testUser(), []models.Policy{{PolicyNumber: "POL-2024-001"}})
	require.NotNil(t, sess)
	require.NotEmpty(t, sess.ID)
	require.NotNil(t, sess.State)
	assert.Equal(t, models.ModeChat, sess.State.Mode)
	assert.Len(t, sess.Policies, 1)

	got := m.Get(sess.ID)
	require.NotNil(t, got)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, m.Len())
}

func TestManagerGetUnknownID(t *testing.T) {
	m := NewManager(8, time.Minute)
	assert.Nil(t, m.Get("no-such-session"))
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(8, time.Minute)
	sess := m.Create(testUser(), nil)

	m.Delete(sess.ID)
	assert.Nil(t, m.Get(sess.ID))
	assert.Equal(t, 0, m.Len())

	// Deleting twice is a no-op.
	m.Delete(sess.ID)
}

func TestManagerSessionIDsAreUnique(t *testing.T) {
	m := NewManager(16, time.Minute)
	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		sess := m.Create(testUser(), nil)
		_, dup := seen[sess.ID]
		require.False(t, dup, "duplicate session ID %q", sess.ID)
		seen[sess.ID] = struct{}{}
	}
}

func TestManagerTTLExpiry(t *testing.T) {
	m := NewManager(8, 50*time.Millisecond)
	sess := m.Create(testUser(), nil)

	require.NotNil(t, m.Get(sess.ID))
	time.Sleep(120 * time.Millisecond)
	assert.Nil(t, m.Get(sess.ID), "session should expire after the TTL")
}

func TestManagerCapacityBound(t *testing.T) {
	m := NewManager(2, time.Minute)

	first := m.Create(testUser(), nil)
	second := m.Create(testUser(), nil)
	third := m.Create(testUser(), nil)

	assert.Equal(t, 2, m.Len())
	assert.Nil(t, m.Get(first.ID), "oldest session should be evicted at capacity")
	assert.NotNil(t, m.Get(second.ID))
	assert.NotNil(t, m.Get(third.ID))
}

func TestManagerDefaultsOnNonPositiveArgs(t *testing.T) {
	m := NewManager(0, 0)
	sess := m.Create(testUser(), nil)
	assert.NotNil(t, m.Get(sess.ID))
}
