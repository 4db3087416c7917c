package behavior

import (
	"context"
	"sync"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// MemoryStore is an in-memory Store. It backs tests and single-process
// deployments that do not need profiles to survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.BehaviorProfile
	writes   int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]domain.BehaviorProfile)}
}

// Read returns the stored profile for a visitor, if any.
func (s *MemoryStore) Read(_ context.Context, visitorID string) (domain.BehaviorProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[visitorID]
	return p, ok, nil
}

// Write stores the profile for a visitor, replacing any previous value.
func (s *MemoryStore) Write(_ context.Context, visitorID string, profile domain.BehaviorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[visitorID] = profile
	s.writes++
	return nil
}

// Writes reports how many write-throughs have happened, for tests.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
