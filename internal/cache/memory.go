package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = 10 * time.Minute

// MemoryStore implements Store in process using go-cache. It is the fallback
// when no Redis address is configured.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates an in-process store. A non-positive cleanup interval
// uses the default.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Set stores a copy of value. A non-positive ttl keeps the key without expiry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.items.Set(normalizeKey(key), stored, ttl)
	return nil
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := s.items.Get(normalizeKey(key))
	if !ok {
		return nil, false, nil
	}
	stored, ok := raw.([]byte)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, true, nil
}

// Delete removes keys from the store.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.items.Delete(normalizeKey(key))
	}
	return nil
}

// Len reports the number of stored items, including expired ones not yet
// cleaned up.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}
