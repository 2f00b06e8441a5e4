package redis

import (
	"context"
	"time"
)

const rateLimitPrefix = "ratelimit:"

// HitWindow incrementa o contador da chave na janela atual e retorna o total e o tempo restante.
// A primeira batida cria a chave com expiração igual à janela.
func (r *RedisInternal) HitWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := rateLimitPrefix + key

	pipe := r.Redis.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}

// Ping verifica a conexão, usado no healthcheck
func (r *RedisInternal) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
