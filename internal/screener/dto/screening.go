package dto

import (
	"time"

	"golang-bandar-screener/internal/entity"
)

type RecommendationSource string

const (
	RecommendationSourceAI       RecommendationSource = "ai"
	RecommendationSourceFallback RecommendationSource = "fallback"
)

// Recommendation is the text used for presentation and where it came from.
type Recommendation struct {
	Text   string               `json:"text"`
	Source RecommendationSource `json:"source"`
}

// ScreeningResult is the outcome of one screening run.
type ScreeningResult struct {
	RunID                 string                  `json:"run_id"`
	StartedAt             time.Time               `json:"started_at"`
	FinishedAt            time.Time               `json:"finished_at"`
	TotalSymbols          int                     `json:"total_symbols"`
	TotalRetrieved        int                     `json:"total_retrieved"`
	Shortlist             []entity.ScoredSnapshot `json:"shortlist"`
	UsedFallbackShortlist bool                    `json:"used_fallback_shortlist"`
	Recommendation        Recommendation          `json:"recommendation"`
	HTML                  string                  `json:"html"`
	Progress              []string                `json:"progress"`
}

// ScreeningErrorResponse is returned when a run aborts.
type ScreeningErrorResponse struct {
	Error    string   `json:"error"`
	RunID    string   `json:"run_id,omitempty"`
	Progress []string `json:"progress,omitempty"`
}
