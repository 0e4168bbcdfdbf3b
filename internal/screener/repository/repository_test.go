package repository

import (
	"time"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/pkg/logger"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Screener: config.Screener{
			SymbolSource:      "testdata/symbols.json",
			MarketDataBaseURL: "http://localhost",
			BatchSize:         10,
			RequestTimeout:    2 * time.Second,
			RunTimeout:        time.Minute,
			RunGuard:          "local",
			RunLockTTL:        time.Minute,
		},
		AI:     config.AI{Provider: "proxy"},
		Chat:   config.Chat{Endpoint: "http://localhost/chat", Timeout: 2 * time.Second},
		Gemini: config.Gemini{Model: "gemini-2.5-flash"},
	}
}

func newTestLogger() *logger.Logger {
	return logger.NewNop()
}
