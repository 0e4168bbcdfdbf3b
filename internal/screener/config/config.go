package config

import (
	"fmt"
	"time"

	"golang-bandar-screener/pkg/common"
	"golang-bandar-screener/pkg/config"

	"github.com/go-playground/validator/v10"
)

// Screener holds the acquisition and run settings.
type Screener struct {
	SymbolSource        string        `mapstructure:"symbol_source" validate:"required"`
	MarketDataBaseURL   string        `mapstructure:"market_data_base_url" validate:"required,url"`
	BatchSize           int           `mapstructure:"batch_size" validate:"gte=1,lte=100"`
	BatchDelay          time.Duration `mapstructure:"batch_delay" validate:"gte=0"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gte=0"`
	RunTimeout          time.Duration `mapstructure:"run_timeout" validate:"gt=0"`
	RunGuard            string        `mapstructure:"run_guard" validate:"oneof=local redis"`
	RunLockTTL          time.Duration `mapstructure:"run_lock_ttl" validate:"gt=0"`
	Schedule            string        `mapstructure:"schedule"`
}

// Cache holds the market data cache settings.
type Cache struct {
	Backend string        `mapstructure:"backend" validate:"oneof=none memory redis"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// Criteria holds the scoring thresholds and the qualification rules.
type Criteria struct {
	MinPrice           float64  `mapstructure:"min_price" validate:"gt=0"`
	MaxPrice           float64  `mapstructure:"max_price" validate:"gtfield=MinPrice"`
	MinScore           int      `mapstructure:"min_score" validate:"gte=0"`
	MinVolumeRatio     float64  `mapstructure:"min_volume_ratio" validate:"gte=0"`
	MaxShortlist       int      `mapstructure:"max_shortlist" validate:"gte=1"`
	FallbackSize       int      `mapstructure:"fallback_size" validate:"gte=1"`
	ExcludedRiskLevels []string `mapstructure:"excluded_risk_levels" validate:"dive,oneof=LOW MEDIUM HIGH PUMP_DUMP"`
}

// AI selects the recommendation provider.
type AI struct {
	Provider            string `mapstructure:"provider" validate:"oneof=proxy gemini"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute" validate:"gte=0"`
}

// Chat holds the external chat endpoint and the local chat rules file.
type Chat struct {
	Endpoint  string        `mapstructure:"endpoint" validate:"required_if=Provider proxy"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RulesPath string        `mapstructure:"rules_path"`
	Model     string        `mapstructure:"model"`
	Provider  string        `mapstructure:"-"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token" validate:"required_if=Enabled true"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the screener service.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	Redis    config.Redis  `mapstructure:"redis"`
	API      config.API    `mapstructure:"api"`
	Screener Screener      `mapstructure:"screener"`
	Cache    Cache         `mapstructure:"cache"`
	Criteria Criteria      `mapstructure:"criteria"`
	AI       AI            `mapstructure:"ai"`
	Chat     Chat          `mapstructure:"chat"`
	Gemini   Gemini        `mapstructure:"gemini"`
	Telegram Telegram      `mapstructure:"telegram"`
}

// Defaults returns the values used when neither the config file nor the environment sets a key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                        "bandar-screener",
		"app.env":                         "development",
		"logger.level":                    "info",
		"logger.encoding":                 "json",
		"redis.host":                      "localhost",
		"redis.port":                      6379,
		"redis.pool_size":                 10,
		"api.port":                        3000,
		"screener.symbol_source":          "resources/data.json",
		"screener.market_data_base_url":   "https://sniper-ihsg.vercel.app/api/stocks",
		"screener.batch_size":             common.DefaultBatchSize,
		"screener.batch_delay":            common.DefaultBatchDelay,
		"screener.request_timeout":        common.DefaultMarketDataTimeout,
		"screener.max_request_per_minute": 0,
		"screener.run_timeout":            10 * time.Minute,
		"screener.run_guard":              common.RunGuardLocal,
		"screener.run_lock_ttl":           common.DefaultRunLockTTL,
		"cache.backend":                   common.CacheBackendMemory,
		"cache.ttl":                       time.Minute,
		"criteria.min_price":              50.0,
		"criteria.max_price":              50000.0,
		"criteria.min_score":              40,
		"criteria.min_volume_ratio":       0.8,
		"criteria.max_shortlist":          25,
		"criteria.fallback_size":          10,
		"criteria.excluded_risk_levels":   []string{"HIGH", "PUMP_DUMP"},
		"ai.provider":                     common.AIProviderProxy,
		"ai.max_request_per_minute":       0,
		"chat.endpoint":                   "https://malva-assistant-api.vercel.app/chat",
		"chat.timeout":                    common.DefaultChatTimeout,
		"chat.rules_path":                 "resources/rules.json",
		"chat.model":                      "malva-assistant",
		"gemini.model":                    "gemini-2.5-flash",
	}
}

// Load loads the screener configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	c.Chat.Provider = c.AI.Provider
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.AI.Provider == common.AIProviderGemini && c.Gemini.APIKey == "" {
		return fmt.Errorf("invalid configuration: gemini.api_key is required for provider %q", c.AI.Provider)
	}
	if (c.Cache.Backend == common.CacheBackendRedis || c.Screener.RunGuard == common.RunGuardRedis) && !c.Redis.Enabled {
		return fmt.Errorf("invalid configuration: redis.enabled must be true for the redis cache or run guard")
	}
	return nil
}
