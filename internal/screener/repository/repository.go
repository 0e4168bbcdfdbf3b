package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
)

var (
	// ErrInvalidSymbolList is returned when the symbol resource is not a JSON array of strings.
	ErrInvalidSymbolList = errors.New("invalid symbol list")
	// ErrNoData is returned when the market data API has nothing for a symbol.
	ErrNoData = errors.New("no market data")
	// ErrInvalidAIResponse is returned when the AI provider answers with something that is not JSON.
	ErrInvalidAIResponse = errors.New("invalid AI response")
)

// UpstreamError is a non-2xx answer from an external API.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// SymbolRepository loads the list of tickers to screen.
type SymbolRepository interface {
	GetSymbols(ctx context.Context) ([]string, error)
}

// MarketDataRepository fetches the latest snapshot of a single symbol.
type MarketDataRepository interface {
	GetSnapshot(ctx context.Context, symbol string) (*entity.MarketSnapshot, error)
}

// AIRepository sends a prompt to the text generation provider and returns its JSON answer.
type AIRepository interface {
	Chat(ctx context.Context, prompt string) (json.RawMessage, error)
}

// RulesRepository reads the chat rules.
type RulesRepository interface {
	Load(ctx context.Context) (*dto.ChatRules, error)
}

// newRequestLimiter returns a limiter allowing maxPerMinute requests, or an unlimited one for 0.
func newRequestLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}
