package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/pkg/logger"
)

type proxyAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewProxyAIRepository creates an AIRepository that forwards prompts to chat.endpoint.
func NewProxyAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	return &proxyAIRepository{
		client: &http.Client{
			Timeout: cfg.Chat.Timeout,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.AI.MaxRequestPerMinute),
	}
}

func (r *proxyAIRepository) Chat(ctx context.Context, prompt string) (json.RawMessage, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	jsonPayload, err := json.Marshal(dto.ChatRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Chat.Endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create new http request", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to send request to chat API", logger.ErrorField(err), logger.StringField("endpoint", r.cfg.Chat.Endpoint))
		return nil, fmt.Errorf("failed to send request to chat API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read response body from chat API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.ErrorContext(ctx, "Received non-OK response from chat API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(body)),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	if !json.Valid(body) {
		r.logger.ErrorContext(ctx, "Chat API returned a non JSON body", logger.StringField("body", string(body)))
		return nil, fmt.Errorf("%w: body is not JSON", ErrInvalidAIResponse)
	}

	r.logger.DebugContext(ctx, "Chat API responded", logger.IntField("bytes", len(body)))
	return json.RawMessage(body), nil
}
