package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/pkg/logger"
)

// geminiAIRepository answers prompts with the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

type geminiChatResponse struct {
	Response  string    `json:"response"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// NewGeminiAIRepository creates an AIRepository backed by genAiClient.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.AI.MaxRequestPerMinute),
		genAiClient:    genAiClient,
	}
}

func (r *geminiAIRepository) Chat(ctx context.Context, prompt string) (json.RawMessage, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Chat.Timeout)
	defer cancel()

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, genai.Text(prompt), nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate content with Gemini", logger.ErrorField(err), logger.StringField("model", r.cfg.Gemini.Model))
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp.UsageMetadata != nil {
		r.logger.DebugContext(ctx, "Gemini token usage", logger.IntField("total_tokens", int(resp.UsageMetadata.TotalTokenCount)))
	}

	b, err := json.Marshal(geminiChatResponse{
		Response:  resp.Text(),
		Model:     r.cfg.Gemini.Model,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini response: %w", err)
	}
	return json.RawMessage(b), nil
}
