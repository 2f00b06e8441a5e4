package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisInternal guarda o cliente Redis usado pelo rate limiter
type RedisInternal struct {
	Redis *redis.Client
}

// NewRedisInternal conecta no endereço informado (REDIS_ADDR) e valida com PING
func NewRedisInternal(ctx context.Context, addr string) (*RedisInternal, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to Redis at %s: %w", addr, err)
	}

	return &RedisInternal{
		Redis: rdb,
	}, nil
}

// Close encerra o cliente
func (r *RedisInternal) Close() error {
	return r.Redis.Close()
}
