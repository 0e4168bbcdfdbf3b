package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/pkg/logger"
)

// ChatService answers chat prompts using the chat rules and the AI provider.
type ChatService interface {
	Chat(ctx context.Context, prompt string) (json.RawMessage, error)
	Reload(ctx context.Context) (*dto.ChatRules, error)
}

type chatService struct {
	cfg       *config.Config
	log       *logger.Logger
	rulesRepo repository.RulesRepository
	aiRepo    repository.AIRepository
	now       func() time.Time

	mu    sync.RWMutex
	rules *dto.ChatRules
}

// NewChatService creates a ChatService and loads the chat rules once. A rules file that
// cannot be loaded is logged and the service starts without rules.
func NewChatService(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	rulesRepo repository.RulesRepository,
	aiRepo repository.AIRepository,
) ChatService {
	s := &chatService{
		cfg:       cfg,
		log:       log,
		rulesRepo: rulesRepo,
		aiRepo:    aiRepo,
		now:       time.Now,
		rules:     &dto.ChatRules{},
	}
	if _, err := s.Reload(ctx); err != nil {
		log.WarnContext(ctx, "Starting without chat rules", logger.ErrorField(err))
	}
	return s
}

// Reload reads the rules again. The previous rules stay active when loading fails.
func (s *chatService) Reload(ctx context.Context) (*dto.ChatRules, error) {
	rules, err := s.rulesRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return rules, nil
}

func (s *chatService) currentRules() *dto.ChatRules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// Chat answers identity questions locally and forwards every other prompt with the
// speaking style appended.
func (s *chatService) Chat(ctx context.Context, prompt string) (json.RawMessage, error) {
	rules := s.currentRules()

	if isIdentityQuestion(prompt, rules) {
		s.log.DebugContext(ctx, "Answering identity question from chat rules")
		b, err := json.Marshal(dto.ChatResponse{
			Response:  rules.IdentityResponse.Response,
			Model:     s.cfg.Chat.Model,
			Prompt:    prompt,
			Timestamp: s.now().UTC(),
			Usage:     dto.ChatUsage{},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal identity response: %w", err)
		}
		return json.RawMessage(b), nil
	}

	return s.aiRepo.Chat(ctx, repository.BuildStyledChatPrompt(prompt, rules))
}

func isIdentityQuestion(prompt string, rules *dto.ChatRules) bool {
	if rules == nil || rules.IdentityResponse.Response == "" {
		return false
	}
	lower := strings.ToLower(prompt)
	for _, keyword := range rules.IdentityResponse.IdentityKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
