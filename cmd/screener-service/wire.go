package main

import (
	"context"
	"fmt"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/delivery/scheduler"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/internal/screener/scoring"
	"golang-bandar-screener/internal/screener/service"
	"golang-bandar-screener/pkg/common"
	"golang-bandar-screener/pkg/logger"
	"golang-bandar-screener/pkg/redis"
	"golang-bandar-screener/pkg/telegram"

	"google.golang.org/genai"
)

// app holds the wired services shared by the serve and run commands.
type app struct {
	screening service.ScreeningService
	chat      service.ChatService
	runner    *scheduler.Runner
	closers   []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// buildApp wires repositories and services from the configuration. notify selects the real
// Telegram notifier; otherwise notifications are dropped.
func buildApp(ctx context.Context, cfg *config.Config, appLogger *logger.Logger, notify bool) (*app, error) {
	a := &app{}

	// Initialize Redis
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		redisClient = client
		a.closers = append(a.closers, client.Close)
	}

	// Initialize repositories
	symbolRepo := repository.NewSymbolRepository(cfg, appLogger)

	var snapshotCache repository.SnapshotCache
	switch cfg.Cache.Backend {
	case common.CacheBackendMemory:
		snapshotCache = repository.NewMemorySnapshotCache(cfg.Cache.TTL)
	case common.CacheBackendRedis:
		snapshotCache = repository.NewRedisSnapshotCache(redisClient)
	}
	marketDataRepo := repository.NewCachingMarketDataRepository(
		repository.NewMarketDataRepository(cfg, appLogger), snapshotCache, cfg.Cache.TTL, appLogger)

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case common.AIProviderGemini:
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		aiRepo = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
	default:
		aiRepo = repository.NewProxyAIRepository(cfg, appLogger)
	}
	rulesRepo := repository.NewRulesRepository(cfg, appLogger)

	var guard service.RunGuard
	switch cfg.Screener.RunGuard {
	case common.RunGuardRedis:
		guard = service.NewRedisRunGuard(redisClient, cfg.Screener.RunLockTTL)
	default:
		guard = service.NewLocalRunGuard()
	}

	engineCfg := scoring.DefaultConfig()
	engineCfg.MinPrice = cfg.Criteria.MinPrice
	engineCfg.MaxPrice = cfg.Criteria.MaxPrice

	// Initialize services
	acquisitionSvc := service.NewAcquisitionService(cfg, appLogger, symbolRepo, marketDataRepo)
	recommendationSvc := service.NewRecommendationService(aiRepo, appLogger)
	a.screening = service.NewScreeningService(cfg, appLogger, acquisitionSvc, scoring.NewEngine(engineCfg), recommendationSvc, guard)
	a.chat = service.NewChatService(ctx, cfg, appLogger, rulesRepo, aiRepo)

	notifier := telegram.NewNopNotifier()
	if notify && cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
		notifier = client
	} else if notify {
		appLogger.Warn("Telegram notifications requested but telegram.enabled is false")
	}

	runner, err := scheduler.NewRunner(cfg, a.screening, notifier, appLogger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.runner = runner

	return a, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		FilePath:   cfg.Logger.FilePath,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
}
