package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/pkg/utils"
)

const longAnswer = "| No | Symbol | Action |\n|---|---|---|\n| 1 | BBCA | BUY |\nDisiplin stop loss."

func testShortlist() []entity.ScoredSnapshot {
	return []entity.ScoredSnapshot{
		{
			MarketSnapshot:    entity.MarketSnapshot{Symbol: "BBCA", Price: 9250, Volume: 30_000_000},
			Score:             85,
			AccumulationScore: 30,
			EntryPrice:        9157.5,
			EarlyEntryPrice:   utils.ToPointer(9157.5),
			StopLoss:          8608.05,
			PriceTargets:      [3]float64{9615.38, 10073.25, 10531.13},
			Reasons:           []string{"Akumulasi senyap", "Volume 1.8x rata-rata", "Valuasi menarik"},
		},
		{
			MarketSnapshot:  entity.MarketSnapshot{Symbol: "GOTO", Price: 70, Volume: 900_000_000},
			Score:           900,
			EntryPrice:      70,
			FallbackNominal: true,
		},
	}
}

func TestExtractRecommendationText(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "analysis first", raw: `{"response": "r", "analysis": "a"}`, want: "a"},
		{name: "skips empty fields", raw: `{"analysis": "  ", "response": "", "result": "res"}`, want: "res"},
		{name: "content", raw: `{"content": "c"}`, want: "c"},
		{name: "non string field", raw: `{"analysis": 12, "response": "r"}`, want: "r"},
		{name: "plain string", raw: `"just text"`, want: "just text"},
		{name: "nothing usable", raw: `{"usage": {}}`, want: ""},
		{name: "array", raw: `[1,2]`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractRecommendationText(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ExtractRecommendationText(json.RawMessage(`{broken`))
	assert.ErrorIs(t, err, repository.ErrInvalidAIResponse)
}

func TestRecommendationService_UsesAIText(t *testing.T) {
	raw, _ := json.Marshal(map[string]string{"response": longAnswer})
	ai := &stubAIRepository{resp: string(raw)}

	got, err := NewRecommendationService(ai, newTestLogger()).Recommend(context.Background(), testShortlist(), 120)
	require.NoError(t, err)
	assert.Equal(t, dto.RecommendationSourceAI, got.Source)
	assert.Equal(t, longAnswer, got.Text)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "(2 dari 120 stocks)")
}

func TestRecommendationService_FallbackOnUnusableAnswer(t *testing.T) {
	cases := []struct {
		name string
		resp string
	}{
		{name: "too short", resp: `{"response": "OK"}`},
		{name: "missing", resp: `{"usage": {"total_tokens": 0}}`},
		{name: "refusal", resp: `{"response": "I'm sorry, but I can't help with financial recommendations of this kind."}`},
		{name: "indonesian refusal", resp: `{"analysis": "Maaf, saya tidak dapat memberikan rekomendasi saham secara spesifik."}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewRecommendationService(&stubAIRepository{resp: tc.resp}, newTestLogger()).
				Recommend(context.Background(), testShortlist(), 10)
			require.NoError(t, err)
			assert.Equal(t, dto.RecommendationSourceFallback, got.Source)
			assert.Equal(t, BuildFallbackRecommendation(testShortlist()), got.Text)
		})
	}
}

func TestRecommendationService_Errors(t *testing.T) {
	upstream := &repository.UpstreamError{StatusCode: 502}
	_, err := NewRecommendationService(&stubAIRepository{err: upstream}, newTestLogger()).
		Recommend(context.Background(), testShortlist(), 10)
	var target *repository.UpstreamError
	assert.True(t, errors.As(err, &target))

	_, err = NewRecommendationService(&stubAIRepository{resp: `not json`}, newTestLogger()).
		Recommend(context.Background(), testShortlist(), 10)
	assert.ErrorIs(t, err, repository.ErrInvalidAIResponse)
}

func TestBuildFallbackRecommendation(t *testing.T) {
	got := BuildFallbackRecommendation(testShortlist())

	lines := strings.Split(got, "\n")
	assert.Contains(t, got, "| No | Symbol | Action | Entry Price | Stop Loss | Target 1 | Target 2 | Timeframe | Confidence | Alasan Trading |")
	assert.Contains(t, got, "| 1 | BBCA | STRONG BUY | Rp 9158 | Rp 8608 | Rp 9615 | Rp 10073 | 1-2 minggu | 85% | Akumulasi senyap; Volume 1.8x rata-rata |")
	assert.Contains(t, got, "| 2 | GOTO | HOLD | Rp 70 | - | - | - | 3-5 hari | 30% | Volume tertinggi 900.0M, belum memenuhi kriteria bandarmology |")
	assert.Equal(t, got, BuildFallbackRecommendation(testShortlist()))
	assert.Greater(t, len(lines), 4)
}

func TestFallbackAction(t *testing.T) {
	assert.Equal(t, "STRONG BUY", fallbackAction(entity.ScoredSnapshot{Score: 80, AccumulationScore: 30}))
	assert.Equal(t, "BUY", fallbackAction(entity.ScoredSnapshot{Score: 80}))
	assert.Equal(t, "HOLD", fallbackAction(entity.ScoredSnapshot{Score: 45}))
	assert.Equal(t, "AVOID", fallbackAction(entity.ScoredSnapshot{Score: 20}))
	assert.Equal(t, "HOLD", fallbackAction(entity.ScoredSnapshot{Score: 500, FallbackNominal: true}))
}
