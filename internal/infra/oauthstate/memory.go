package oauthstate

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps issued states in process memory. States do not survive a
// restart and are not shared between replicas.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]time.Time
	now    func() time.Time
}

// NewMemoryStore creates an in-process state store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)
	s.states[state] = now.Add(s.ttl)

	return nil
}

func (s *MemoryStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)

	return s.now().Before(expiresAt), nil
}

// evictExpired must be called with mu held.
func (s *MemoryStore) evictExpired(now time.Time) {
	for state, expiresAt := range s.states {
		if !now.Before(expiresAt) {
			delete(s.states, state)
		}
	}
}
