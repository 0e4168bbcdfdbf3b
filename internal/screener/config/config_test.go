package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: screener-test\n"))
	require.NoError(t, err)

	assert.Equal(t, "screener-test", cfg.App.Name)
	assert.Equal(t, 10, cfg.Screener.BatchSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Screener.BatchDelay)
	assert.Equal(t, 40, cfg.Criteria.MinScore)
	assert.Equal(t, 50.0, cfg.Criteria.MinPrice)
	assert.Equal(t, []string{"HIGH", "PUMP_DUMP"}, cfg.Criteria.ExcludedRiskLevels)
	assert.Equal(t, "proxy", cfg.AI.Provider)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
screener:
  batch_size: 5
  batch_delay: 1s
criteria:
  min_score: 35
  excluded_risk_levels: ["HIGH"]
`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Screener.BatchSize)
	assert.Equal(t, time.Second, cfg.Screener.BatchDelay)
	assert.Equal(t, 35, cfg.Criteria.MinScore)
	assert.Equal(t, []string{"HIGH"}, cfg.Criteria.ExcludedRiskLevels)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "ai:\n  provider: openai\n"},
		{"gemini without key", "ai:\n  provider: gemini\n"},
		{"redis cache without redis", "cache:\n  backend: redis\n"},
		{"bad risk level", "criteria:\n  excluded_risk_levels: [\"EXTREME\"]\n"},
		{"price range inverted", "criteria:\n  min_price: 100\n  max_price: 10\n"},
		{"telegram without token", "telegram:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
