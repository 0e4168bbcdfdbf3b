package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang-bandar-screener/internal/screener/config"
	"golang-bandar-screener/pkg/logger"
)

type symbolRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewSymbolRepository creates a SymbolRepository reading screener.symbol_source,
// which may be an http(s) URL or a local file path.
func NewSymbolRepository(cfg *config.Config, log *logger.Logger) SymbolRepository {
	return &symbolRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (r *symbolRepository) GetSymbols(ctx context.Context) ([]string, error) {
	source := r.cfg.Screener.SymbolSource

	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = r.fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to load symbol list", logger.StringField("source", source), logger.ErrorField(err))
		return nil, fmt.Errorf("failed to load symbol list: %w", err)
	}

	symbols, err := ParseSymbols(body)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse symbol list", logger.StringField("source", source), logger.ErrorField(err))
		return nil, err
	}

	r.log.DebugContext(ctx, "Symbol list loaded", logger.StringField("source", source), logger.IntField("total", len(symbols)))
	return symbols, nil
}

func (r *symbolRepository) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// ParseSymbols decodes a JSON array of tickers. Entries are trimmed and upper-cased,
// empty ones are dropped.
func ParseSymbols(body []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidSymbolList)
	}

	var raw []string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSymbolList, err)
	}

	symbols := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}
