package session

import (
	"context"
	"sync"
)

// Store persists at most one Session per session id. Set writes all
// fields together so no reader observes partial state; Clear removes them
// atomically from the caller's perspective. The store never redirects or
// otherwise reacts to what it holds.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, sess Session) error
	Clear(ctx context.Context, id string) error
	// IDs lists the ids of all stored sessions, for expiry sweeps.
	IDs(ctx context.Context) ([]string, error)
}

// MemoryStore is an in-process Store used in tests and single-node
// development runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Get returns the stored session or nil when none exists.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

// Set stores the session, replacing any previous one for the id.
func (m *MemoryStore) Set(_ context.Context, id string, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = sess
	return nil
}

// Clear removes the session for the id. Clearing an absent id is a no-op.
func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// IDs lists all stored session ids.
func (m *MemoryStore) IDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
