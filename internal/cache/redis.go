package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisQuoteCache(client *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisQuoteCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisQuoteCache) Get(ctx context.Context, entityType, state, filing string) (json.RawMessage, error) {
	key := quoteKey(entityType, state, filing)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return json.RawMessage(data), nil
}

func (r *RedisQuoteCache) Set(ctx context.Context, entityType, state, filing string, payload json.RawMessage) error {
	key := quoteKey(entityType, state, filing)

	// Jitter keeps a burst of quotes from expiring at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter

	if err := r.client.Set(ctx, key, []byte(payload), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func quoteKey(entityType, state, filing string) string {
	return fmt.Sprintf("pkgquote:%s:%s:%s", entityType, state, filing)
}
