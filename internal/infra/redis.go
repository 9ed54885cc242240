package infra

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client. Pool sizing comes from
// config: the worker pool holds connections open in BRPOP, so the pool must
// be at least WORKER_POOL_SIZE plus headroom for request-path enqueues.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.RedisPoolSize
	opts.MinIdleConns = cfg.RedisMinIdleConns

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
