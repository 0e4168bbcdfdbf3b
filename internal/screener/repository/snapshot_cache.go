package repository

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	goRedis "github.com/redis/go-redis/v9"

	"golang-bandar-screener/pkg/common"
	"golang-bandar-screener/pkg/redis"
)

// SnapshotCache stores encoded snapshots keyed by symbol.
type SnapshotCache interface {
	Get(ctx context.Context, symbol string) ([]byte, bool, error)
	Set(ctx context.Context, symbol string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, symbol string) error
}

type memorySnapshotCache struct {
	inmemoryCache *cache.Cache
}

// NewMemorySnapshotCache creates an in-process SnapshotCache.
func NewMemorySnapshotCache(defaultTTL time.Duration) SnapshotCache {
	return &memorySnapshotCache{
		inmemoryCache: cache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *memorySnapshotCache) Get(_ context.Context, symbol string) ([]byte, bool, error) {
	v, ok := c.inmemoryCache.Get(symbol)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (c *memorySnapshotCache) Set(_ context.Context, symbol string, value []byte, ttl time.Duration) error {
	c.inmemoryCache.Set(symbol, value, ttl)
	return nil
}

func (c *memorySnapshotCache) Delete(_ context.Context, symbol string) error {
	c.inmemoryCache.Delete(symbol)
	return nil
}

type redisSnapshotCache struct {
	client *redis.Client
}

// NewRedisSnapshotCache creates a SnapshotCache shared through Redis.
func NewRedisSnapshotCache(client *redis.Client) SnapshotCache {
	return &redisSnapshotCache{client: client}
}

func (c *redisSnapshotCache) key(symbol string) string {
	return common.RedisKeySnapshotNamespace + ":" + symbol
}

func (c *redisSnapshotCache) Get(ctx context.Context, symbol string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.key(symbol)).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, symbol string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(symbol), value, ttl).Err()
}

func (c *redisSnapshotCache) Delete(ctx context.Context, symbol string) error {
	return c.client.Del(ctx, c.key(symbol)).Err()
}
