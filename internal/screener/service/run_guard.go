package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"golang-bandar-screener/pkg/common"
	"golang-bandar-screener/pkg/redis"
)

// RunGuard allows a single screening run at a time.
type RunGuard interface {
	// Acquire returns ErrRunInProgress when another run holds the guard.
	Acquire(ctx context.Context, token string) error
	// Release frees the guard if it is still held by token.
	Release(ctx context.Context, token string) error
}

type localRunGuard struct {
	mu    sync.Mutex
	owner string
}

// NewLocalRunGuard creates an in-process RunGuard.
func NewLocalRunGuard() RunGuard {
	return &localRunGuard{}
}

func (g *localRunGuard) Acquire(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owner != "" {
		return ErrRunInProgress
	}
	g.owner = token
	return nil
}

func (g *localRunGuard) Release(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owner == token {
		g.owner = ""
	}
	return nil
}

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = goRedis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisRunGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunGuard creates a RunGuard shared by every instance using the same Redis.
// The lock expires after ttl so a crashed run cannot block forever.
func NewRedisRunGuard(client *redis.Client, ttl time.Duration) RunGuard {
	if ttl <= 0 {
		ttl = common.DefaultRunLockTTL
	}
	return &redisRunGuard{client: client, ttl: ttl}
}

func (g *redisRunGuard) Acquire(ctx context.Context, token string) error {
	ok, err := g.client.SetNX(ctx, common.RedisKeyRunLock, token, g.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return ErrRunInProgress
	}
	return nil
}

func (g *redisRunGuard) Release(ctx context.Context, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{common.RedisKeyRunLock}, token).Err(); err != nil && err != goRedis.Nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}
