package kv

import (
	"context"
	"fmt"
	"sync"

	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
)

// MemoryStore is a process-local KeyValueStore, used by tests and the memory backend
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

var _ repositories.KeyValueStore = (*MemoryStore)(nil)

// Get returns a copy of the stored value
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Apply writes all mutations under one lock
func (s *MemoryStore) Apply(ctx context.Context, mutations ...repositories.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applyMutations(s.data, mutations)
	return nil
}

// Len returns the number of stored keys
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error { return nil }

func applyMutations(data map[string][]byte, mutations []repositories.Mutation) {
	for _, m := range mutations {
		if m.Delete {
			delete(data, m.Key)
			continue
		}
		data[m.Key] = append([]byte(nil), m.Value...)
	}
}
