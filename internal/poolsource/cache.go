package poolsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"dexAccel/internal/model"
)

// Cache stores pool snapshots with a time to live.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.Pool, bool, error)
	Set(ctx context.Context, key string, pools []model.Pool, ttl time.Duration) error
}

// MemoryCache is a process-local cache.
type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(cleanup time.Duration) *MemoryCache {
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &MemoryCache{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]model.Pool, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	pools, ok := v.([]model.Pool)
	if !ok {
		return nil, false, fmt.Errorf("cache entry %s has type %T", key, v)
	}
	return clonePools(pools), true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, pools []model.Pool, ttl time.Duration) error {
	m.c.Set(key, clonePools(pools), ttl)
	return nil
}

// RedisCache shares snapshots between replicas as JSON values.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects using a redis:// URL.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]model.Pool, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var pools []model.Pool
	if err := json.Unmarshal(data, &pools); err != nil {
		return nil, false, fmt.Errorf("decode cached pools: %w", err)
	}
	return pools, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, pools []model.Pool, ttl time.Duration) error {
	data, err := json.Marshal(pools)
	if err != nil {
		return fmt.Errorf("encode pools: %w", err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
