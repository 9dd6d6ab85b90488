package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	// ErrItemNotFound is returned by the generic store; entity stores
	// translate it into a marked not-found error.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemExists is returned on key collisions; entity stores
	// translate it into a marked already-exists error.
	ErrItemExists = errors.New("item already exists")
)

// InMemoryStore is a generic threadsafe key-value store backing the
// entity stores. Every operation is atomic; cross-entity sequences that
// must be atomic together are serialized by the caller through a
// KeyLocker, mirroring the row-lock discipline of a SQL store.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return ErrItemExists
	}
	s.items[id] = item
	return nil
}

func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrItemNotFound
	}
	return item, nil
}

func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	s.items[id] = item
	return nil
}

func (s *InMemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// List returns items matching filterFn in a stable key order.
func (s *InMemoryStore[T]) List(ctx context.Context, filterFn func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []T
	for _, k := range keys {
		item := s.items[k]
		if filterFn == nil || filterFn(item) {
			out = append(out, item)
		}
	}
	return out
}

// Mutate applies fn to the stored item under the write lock. fn
// receives the stored value and returns the replacement.
func (s *InMemoryStore[T]) Mutate(ctx context.Context, id string, fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return ErrItemNotFound
	}
	next, err := fn(item)
	if err != nil {
		return err
	}
	s.items[id] = next
	return nil
}
