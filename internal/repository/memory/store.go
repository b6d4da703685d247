// Package memory provides a generic thread-safe in-memory key-value store
// backing the repository adapters.
package memory

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when the requested key does not exist.
var ErrNotFound = errors.New("not found")

// Store maps string keys, derived from the stored values, to values.
type Store[V any] struct {
	mu      sync.RWMutex
	data    map[string]V
	keyFunc func(V) string
}

// New creates a Store with a key extractor function.
func New[V any](keyFunc func(V) string) *Store[V] {
	return &Store[V]{
		data:    make(map[string]V),
		keyFunc: keyFunc,
	}
}

// Put inserts or replaces the value under its derived key.
func (s *Store[V]) Put(_ context.Context, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.keyFunc(v)] = v
	return nil
}

// Get returns the value for key, or ErrNotFound if absent.
func (s *Store[V]) Get(_ context.Context, key string) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

// Delete removes the value for key. Returns ErrNotFound if absent.
func (s *Store[V]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return ErrNotFound
	}
	delete(s.data, key)
	return nil
}

// Rename moves a value from oldKey to the key derived from v, then stores
// v. Used when an update changes the entity's key.
func (s *Store[V]) Rename(_ context.Context, oldKey string, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, oldKey)
	s.data[s.keyFunc(v)] = v
	return nil
}

// All returns all stored values in arbitrary order.
func (s *Store[V]) All(_ context.Context) ([]V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.data))
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}

// Has reports whether the key exists.
func (s *Store[V]) Has(_ context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}
