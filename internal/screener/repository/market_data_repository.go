package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/pkg/logger"
)

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewMarketDataRepository creates a MarketDataRepository backed by the stock quote API.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Screener.RequestTimeout,
		},
		requestLimiter: newRequestLimiter(cfg.Screener.MaxRequestPerMinute),
	}
}

func (r *marketDataRepository) GetSnapshot(ctx context.Context, symbol string) (*entity.MarketSnapshot, error) {
	url := strings.TrimRight(r.cfg.Screener.MarketDataBaseURL, "/") + "/" + strings.ToLower(symbol)

	body, err := r.sendRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}

	var response dto.MarketDataResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode market data for %s: %w", symbol, err)
	}
	if !response.Success || len(response.Data) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	snapshot := response.Data.ToSnapshot(symbol)
	return &snapshot, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, method string, url string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", url),
		zap.Int("max_request_per_minute", r.cfg.Screener.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.DebugContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.DebugContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.DebugContext(ctx, "Failed to send request to market data API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.DebugContext(ctx, "Failed to read response body from market data API", fields...)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.DebugContext(ctx, "Received non-OK response from market data API", fields...)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
