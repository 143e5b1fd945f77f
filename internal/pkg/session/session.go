// Package session stores signed-in dashboard sessions behind a small
// get/set/clear interface.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yigit/mentoraid/internal/app/models"
)

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Session is what the store keeps per signed-in user
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at t. A zero
// ExpiresAt never expires.
func (s Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}

// Store persists sessions between requests
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Set(ctx context.Context, id string, s Session) error
	Clear(ctx context.Context, id string) error
}

// MemoryStore is a process-local Store with expiry
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Get returns the session with id, or ErrNotFound when absent or expired
func (m *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return Session{}, ErrNotFound
	}
	if s.Expired(m.now()) {
		_ = m.Clear(ctx, id)
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Set stores s under id, replacing any previous session
func (m *MemoryStore) Set(ctx context.Context, id string, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.ID = id
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return nil
}

// Clear removes the session; clearing an unknown id is not an error
func (m *MemoryStore) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (m *MemoryStore) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
