// Package memory provides an in-process query cache. It is the default
// cache when no Redis address is configured.
package memory

import (
	"context"
	"sync"

	"github.com/carbondash/carbondash/pkg/domain"
)

// Store implements ports.QueryCache in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates a new in-memory cache.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save stores a copy of the payload so the caller's slice stays isolated.
func (s *Store) Save(ctx context.Context, key string, payload []byte) error {
	copied := make([]byte, len(payload))
	copy(copied, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves a copy of the cached payload.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, nil
}

// Delete removes a single key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys lists the cached keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Flush drops every entry.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

// Close is a no-op for the in-memory cache.
func (s *Store) Close() error {
	return nil
}
