package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

// RedisStore backs the Store contract with Redis so cache entries survive
// restarts and are shared across instances. Redis errors degrade to cache
// misses; the database stays the source of truth.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.LogWarn("redis get failed, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		utils.LogWarn("redis set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		utils.LogWarn("redis del failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
