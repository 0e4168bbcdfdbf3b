package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/pkg/logger"
)

type stubSymbolRepository struct {
	symbols []string
	err     error
}

func (s *stubSymbolRepository) GetSymbols(context.Context) ([]string, error) {
	return s.symbols, s.err
}

type stubMarketDataRepository struct {
	mu        sync.Mutex
	calls     []string
	snapshots map[string]entity.MarketSnapshot
	panicOn   string
}

func (s *stubMarketDataRepository) GetSnapshot(_ context.Context, symbol string) (*entity.MarketSnapshot, error) {
	s.mu.Lock()
	s.calls = append(s.calls, symbol)
	s.mu.Unlock()
	if symbol == s.panicOn {
		panic("boom")
	}
	snap, ok := s.snapshots[symbol]
	if !ok {
		return nil, repository.ErrNoData
	}
	return &snap, nil
}

type stubAIRepository struct {
	mu      sync.Mutex
	prompts []string
	resp    string
	err     error
}

func (s *stubAIRepository) Chat(_ context.Context, prompt string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.resp), nil
}

type stubRulesRepository struct {
	rules *dto.ChatRules
	err   error
}

func (s *stubRulesRepository) Load(context.Context) (*dto.ChatRules, error) {
	return s.rules, s.err
}

func newTestConfig() *config.Config {
	return &config.Config{
		Screener: config.Screener{
			BatchSize:  2,
			BatchDelay: 0,
			RunTimeout: time.Minute,
		},
		Criteria: config.Criteria{
			MinPrice:           50,
			MaxPrice:           50000,
			MinScore:           40,
			MinVolumeRatio:     0.8,
			MaxShortlist:       25,
			FallbackSize:       10,
			ExcludedRiskLevels: []string{"HIGH", "PUMP_DUMP"},
		},
		Chat: config.Chat{Model: "malva-assistant"},
	}
}

func newTestLogger() *logger.Logger {
	return logger.NewNop()
}
