// Package redis provides the Redis-backed result cache used for computed
// forecast and dashboard payloads.  Caching is optional; deployments without
// Redis run every request through the engine directly.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

// Client wraps the go-redis client with the service's config and logging.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "redis connection failed")
	}
	log.Info("redis connected", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return &Client{rdb: rdb, logger: log}, nil
}

// Ping checks connection liveness; readiness probes call this.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
