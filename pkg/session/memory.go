package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. Suitable for a single
// node and for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]uint),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	if !ok {
		return 0, ErrNotFound
	}
	return userID, nil
}

func (s *MemoryStore) Put(_ context.Context, token string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = userID
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
