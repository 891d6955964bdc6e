package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON-encoded values under a shared key prefix so that
// several processes see the same computed reports.
type RedisCache[T any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisClient connects to addr and checks the connection with a ping.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func NewRedisCache[T any](client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache[T] {
	return &RedisCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisCache[T]) key(k string) string {
	return r.prefix + k
}

// Get returns found=false with a nil error on a miss.
func (r *RedisCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false, fmt.Errorf("unmarshal cached %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisCache[T]) Set(ctx context.Context, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Flush deletes every key under the prefix.
func (r *RedisCache[T]) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
