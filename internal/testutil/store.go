package testutil

import (
	"context"
	"sync"

	ierr "github.com/flexprice/budgetpdf/internal/errors"
)

// InMemoryStore is a keyed map safe for concurrent handlers in tests
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// Create stores item under key. Keys are write-once.
func (s *InMemoryStore[T]) Create(_ context.Context, key string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; exists {
		return ierr.NewErrorf("key %s already stored", key).
			Mark(ierr.ErrInvalidOperation)
	}
	s.items[key] = item
	return nil
}

func (s *InMemoryStore[T]) Get(_ context.Context, key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[key]
	return item, ok
}

func (s *InMemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
