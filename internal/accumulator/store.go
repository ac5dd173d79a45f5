package accumulator

import (
	"sync"

	"github.com/google/uuid"

	"accumulator-api/internal/history"
)

// Store is an in-memory registry of accumulator sessions. Each session owns
// one history chain; sessions are fully isolated from one another.
type Store struct {
	mu     sync.RWMutex
	chains map[string]*history.Chain
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{chains: make(map[string]*history.Chain)}
}

// Create registers a fresh empty chain and returns its session ID.
func (s *Store) Create() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.chains[id] = history.New()
	s.mu.Unlock()

	return id
}

// Get returns the chain for the given session ID, if it exists.
func (s *Store) Get(id string) (*history.Chain, bool) {
	s.mu.RLock()
	c, ok := s.chains[id]
	s.mu.RUnlock()
	return c, ok
}

// Delete discards the session. Deleting an unknown session reports false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chains[id]; !ok {
		return false
	}
	delete(s.chains, id)
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chains)
}
