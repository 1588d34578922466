// Package session provides a bounded, expiring store for active conversation
// sessions. Sessions are created on login, evicted on TTL expiry or capacity
// pressure, and deleted eagerly on logout.
package session

import (
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/claimpilot/claimpilot/internal/models"
	"github.com/google/uuid"
)

// Default sizing for the session store.
const (
	DefaultTTL      = 30 * time.Minute
	DefaultCapacity = 1024
)

// Session holds one logged-in conversation. The mutex serializes message
// processing within the session: no two concurrent messages for the same
// session may mutate the state at once.
type Session struct {
	ID       string
	User     models.Identity
	Policies []models.Policy
	State    *models.SessionState

	mu sync.Mutex
}

// Lock acquires the session's single-writer lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's single-writer lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager owns the session lifecycle. It is safe for concurrent use.
type Manager struct {
	cache *lru.LRU[string, *Session]
}

// NewManager creates a session manager with the given capacity and TTL.
// Non-positive values fall back to the defaults.
func NewManager(capacity int, ttl time.Duration) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	slog.Debug("session.NewManager: creating session store", "capacity", capacity, "ttl", ttl)
	cache := lru.NewLRU(capacity, func(id string, _ *Session) {
		slog.Debug("session.Manager: session evicted", "sessionID", id)
	}, ttl)
	return &Manager{cache: cache}
}

// Create registers a new session for the given user and returns it. The
// session ID is a random UUID.
func (m *Manager) Create(user models.Identity, policies []models.Policy) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		User:     user,
		Policies: policies,
		State:    models.NewSessionState(),
	}
	m.cache.Add(sess.ID, sess)
	slog.Info("session.Manager.Create: session created", "sessionID", sess.ID, "email", user.Email)
	return sess
}

// Get returns the session for the given ID, or nil if it does not exist or
// has expired.
func (m *Manager) Get(id string) *Session {
	sess, ok := m.cache.Get(id)
	if !ok {
		return nil
	}
	return sess
}

// Delete removes the session for the given ID.
func (m *Manager) Delete(id string) {
	if m.cache.Remove(id) {
		slog.Info("session.Manager.Delete: session removed", "sessionID", id)
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}
