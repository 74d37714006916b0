package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

// ErrCacheMiss is returned when a key is absent.  Callers treat it as the
// signal to compute, not as a failure.
var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// Cache stores JSON-serialised computed results under prefixed keys.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// GetOrSet returns the cached value for key into dest, or invokes
	// loader, stores its result, and returns it.  Concurrent callers for
	// the same key share one loader invocation.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error

	Ping(ctx context.Context) error
}

type resultCache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

// CacheOption configures a Cache.
type CacheOption func(*resultCache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) CacheOption {
	return func(c *resultCache) { c.prefix = prefix }
}

// WithDefaultTTL sets the TTL used when a call passes ttl == 0.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *resultCache) { c.defaultTTL = ttl }
}

// NewCache builds a Cache over an established client.
func NewCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	c := &resultCache{
		client:     client,
		logger:     log.Named("cache"),
		prefix:     "sitecast:",
		defaultTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *resultCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by +/-10% so a burst of writes does not
// expire as one stampede.
func (c *resultCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *resultCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache get")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cache decode")
	}
	return nil
}

func (c *resultCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cache encode")
	}
	if err := c.client.rdb.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache set")
	}
	return nil
}

func (c *resultCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.rdb.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache delete")
	}
	return nil
}

func (c *resultCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		// Degraded cache: fall through to the loader rather than failing
		// the request.
		c.logger.Warn("cache read failed, loading directly", logging.String("key", key), logging.Err(err))
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	// The shared singleflight value reaches every waiter through one more
	// JSON round trip so each caller owns an independent copy.
	return assignJSON(val, dest)
}

func (c *resultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// assignJSON copies value into dest through a JSON round trip.
func assignJSON(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cache decode")
	}
	return json.Unmarshal(data, dest)
}
