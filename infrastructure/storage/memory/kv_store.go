package memory

import (
	"context"
	"fmt"
	"sync"

	mem "github.com/mcparena/arena-go/domain/memory"
)

// KVStore is a thread-safe in-memory key-value store.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{
		data: make(map[string][]byte),
	}
}

// Store saves a value under key, overwriting any previous value.
func (s *KVStore) Store(_ context.Context, key string, value []byte) error {
	if key == "" {
		return mem.ErrInvalidKey
	}

	buf := make([]byte, len(value))
	copy(buf, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = buf
	return nil
}

// Retrieve returns the value for key.
func (s *KVStore) Retrieve(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mem.ErrNotFound, key)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Keys returns all stored keys.
func (s *KVStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Clear removes all entries.
func (s *KVStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	return nil
}
