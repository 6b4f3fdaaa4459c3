// Package state keeps in-memory values mirrored to a durable key-value store.
package state

import "sync"

// Store is a durable key-value store of raw text
type Store interface {
	// Get returns the value under key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryStore is a Store kept in process memory
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set implements Store
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
