package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/pkg/logger"
)

// minRecommendationLength is the shortest AI answer accepted as a recommendation.
const minRecommendationLength = 40

// responseFields are checked in order for the recommendation text.
var responseFields = []string{"analysis", "response", "result", "content"}

var refusalSentinels = []string{
	"i'm sorry, but i can't",
	"i cannot help with",
	"i can't assist with",
	"as an ai language model",
	"content policy",
	"maaf, saya tidak dapat",
	"saya tidak bisa membantu",
}

// RecommendationService turns a shortlist into recommendation text.
type RecommendationService interface {
	Recommend(ctx context.Context, shortlist []entity.ScoredSnapshot, totalRetrieved int) (*dto.Recommendation, error)
}

type recommendationService struct {
	aiRepo repository.AIRepository
	log    *logger.Logger
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(aiRepo repository.AIRepository, log *logger.Logger) RecommendationService {
	return &recommendationService{aiRepo: aiRepo, log: log}
}

// Recommend asks the AI provider for a recommendation table. Transport, status and
// decoding errors are returned. An unusable or refused answer is replaced by a table
// built locally from the shortlist.
func (s *recommendationService) Recommend(ctx context.Context, shortlist []entity.ScoredSnapshot, totalRetrieved int) (*dto.Recommendation, error) {
	prompt := repository.BuildScreeningPrompt(shortlist, totalRetrieved)

	raw, err := s.aiRepo.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("AI analysis request failed: %w", err)
	}

	text, err := ExtractRecommendationText(raw)
	if err != nil {
		return nil, err
	}

	if !isUsableRecommendation(text) {
		s.log.WarnContext(ctx, "AI recommendation unusable, using local fallback", logger.IntField("length", len(text)))
		return &dto.Recommendation{
			Text:   BuildFallbackRecommendation(shortlist),
			Source: dto.RecommendationSourceFallback,
		}, nil
	}

	return &dto.Recommendation{Text: text, Source: dto.RecommendationSourceAI}, nil
}

// ExtractRecommendationText returns the first non-empty string among the known response
// fields, or the payload itself when it is a JSON string.
func ExtractRecommendationText(raw json.RawMessage) (string, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrInvalidAIResponse, err)
	}

	switch v := payload.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		for _, field := range responseFields {
			if text, ok := v[field].(string); ok && strings.TrimSpace(text) != "" {
				return text, nil
			}
		}
	}
	return "", nil
}

func isUsableRecommendation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minRecommendationLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, sentinel := range refusalSentinels {
		if strings.Contains(lower, sentinel) {
			return false
		}
	}
	return true
}

// BuildFallbackRecommendation renders a markdown recommendation table from the shortlist.
func BuildFallbackRecommendation(shortlist []entity.ScoredSnapshot) string {
	var b strings.Builder
	b.WriteString("**Rekomendasi otomatis** berdasarkan skor bandarmology (AI tidak memberikan jawaban yang dapat digunakan).\n\n")
	b.WriteString("| No | Symbol | Action | Entry Price | Stop Loss | Target 1 | Target 2 | Timeframe | Confidence | Alasan Trading |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")

	for i, s := range shortlist {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s | %s | %d%% | %s |\n",
			i+1,
			s.Symbol,
			fallbackAction(s),
			formatRupiah(s.EntryPrice),
			formatRupiah(s.StopLoss),
			formatRupiah(s.PriceTargets[0]),
			formatRupiah(s.PriceTargets[1]),
			fallbackTimeframe(s),
			fallbackConfidence(s),
			fallbackReason(s),
		))
	}

	b.WriteString("\n*Gunakan manajemen risiko dan disiplin stop loss.*")
	return b.String()
}

func fallbackAction(s entity.ScoredSnapshot) string {
	if s.FallbackNominal {
		return "HOLD"
	}
	switch {
	case s.Score >= 80 && s.AccumulationScore >= 30:
		return "STRONG BUY"
	case s.Score >= 60:
		return "BUY"
	case s.Score >= 40:
		return "HOLD"
	default:
		return "AVOID"
	}
}

func fallbackTimeframe(s entity.ScoredSnapshot) string {
	if s.EarlyEntryPrice != nil {
		return "1-2 minggu"
	}
	return "3-5 hari"
}

func fallbackConfidence(s entity.ScoredSnapshot) int {
	if s.FallbackNominal {
		return 30
	}
	switch {
	case s.Score > 95:
		return 95
	case s.Score < 10:
		return 10
	default:
		return s.Score
	}
}

func fallbackReason(s entity.ScoredSnapshot) string {
	if s.FallbackNominal {
		return fmt.Sprintf("Volume tertinggi %.1fM, belum memenuhi kriteria bandarmology", float64(s.Volume)/1e6)
	}
	reasons := s.Reasons
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	if len(reasons) == 0 {
		return "-"
	}
	return strings.ReplaceAll(strings.Join(reasons, "; "), "|", "/")
}

func formatRupiah(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("Rp %.0f", v)
}
