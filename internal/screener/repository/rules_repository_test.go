package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesRepository_Load(t *testing.T) {
	cfg := newTestConfig()
	cfg.Chat.RulesPath = "testdata/rules.json"

	rules, err := NewRulesRepository(cfg, newTestLogger()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"siapa kamu", "who are you"}, rules.IdentityResponse.IdentityKeywords)
	require.NotNil(t, rules.SpeakingStyle)
	assert.Equal(t, []string{"Oke siap!", "Mantap"}, rules.SpeakingStyle.Examples)
	assert.Len(t, rules.GeneralRules, 2)
}

func TestRulesRepository_EmptyPath(t *testing.T) {
	rules, err := NewRulesRepository(newTestConfig(), newTestLogger()).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rules.SpeakingStyle)
	assert.Empty(t, rules.IdentityResponse.IdentityKeywords)
}

func TestRulesRepository_MissingFile(t *testing.T) {
	cfg := newTestConfig()
	cfg.Chat.RulesPath = "testdata/missing.json"

	_, err := NewRulesRepository(cfg, newTestLogger()).Load(context.Background())
	assert.Error(t, err)
}
