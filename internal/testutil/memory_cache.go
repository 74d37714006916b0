package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
)

// MemoryCache is a map-backed rediscache.Cache for tests that need the hit
// path; the noop cache always misses. Values round-trip through JSON the
// same way the Redis-backed cache stores them. TTLs are ignored.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	data, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return rediscache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

var _ rediscache.Cache = (*MemoryCache)(nil)
