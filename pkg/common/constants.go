package common

import "time"

const (
	RedisKeySnapshotNamespace = "screener:snapshot"
	RedisKeyRunLock           = "screener:run:lock"

	DefaultBatchSize         = 10
	DefaultBatchDelay        = 300 * time.Millisecond
	DefaultMarketDataTimeout = 10 * time.Second
	DefaultChatTimeout       = 90 * time.Second
	DefaultRunLockTTL        = 15 * time.Minute

	AIProviderProxy  = "proxy"
	AIProviderGemini = "gemini"

	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	RunGuardLocal = "local"
	RunGuardRedis = "redis"
)
