package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/pkg/logger"
)

type fileRulesRepository struct {
	cfg *config.Config
	log *logger.Logger
}

// NewRulesRepository creates a RulesRepository reading chat.rules_path.
func NewRulesRepository(cfg *config.Config, log *logger.Logger) RulesRepository {
	return &fileRulesRepository{cfg: cfg, log: log}
}

// Load reads the rules file. An empty rules path yields empty rules.
func (r *fileRulesRepository) Load(ctx context.Context) (*dto.ChatRules, error) {
	path := r.cfg.Chat.RulesPath
	if path == "" {
		return &dto.ChatRules{}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat rules: %w", err)
	}

	var rules dto.ChatRules
	if err := json.Unmarshal(b, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse chat rules: %w", err)
	}

	r.log.InfoContext(ctx, "Chat rules loaded",
		logger.StringField("path", path),
		logger.IntField("identity_keywords", len(rules.IdentityResponse.IdentityKeywords)),
		logger.IntField("general_rules", len(rules.GeneralRules)),
	)
	return &rules, nil
}
