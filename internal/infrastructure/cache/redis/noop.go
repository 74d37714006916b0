package redis

import (
	"context"
	"time"
)

// noopCache always misses; it backs deployments that run without Redis so
// the services never have to branch on whether caching is enabled.
type noopCache struct{}

// NewNoop returns a Cache that stores nothing and always misses.
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, interface{}) error { return ErrCacheMiss }

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }

func (noopCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	return assignJSON(v, dest)
}

func (noopCache) Ping(context.Context) error { return nil }
