package session

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process store. Suitable for a single
// instance; a multi-instance deployment needs the Redis store, since sessions
// here would silently partition by instance.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = cloneSession(s)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// cloneSession copies the session so callers never share the stored value.
func cloneSession(s *Session) *Session {
	out := *s
	if len(s.History) > 0 {
		out.History = make([]HistoryEntry, len(s.History))
		copy(out.History, s.History)
	}
	return &out
}
