package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestProxyAIRepository_Chat(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		_, _ = w.Write([]byte(`{"response": "ok", "model": "malva"}`))
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.Chat.Endpoint = srv.URL + "/chat"

	got, err := NewProxyAIRepository(cfg, newTestLogger()).Chat(context.Background(), "halo")
	require.NoError(t, err)
	assert.JSONEq(t, `{"response": "ok", "model": "malva"}`, string(got))
	assert.Equal(t, "halo", received["prompt"])
}

func TestProxyAIRepository_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.Chat.Endpoint = srv.URL

	_, err := NewProxyAIRepository(cfg, newTestLogger()).Chat(context.Background(), "halo")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.JSONEq(t, `{"error": "rate limited"}`, string(upstream.Body))
}

func TestProxyAIRepository_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.Chat.Endpoint = srv.URL

	_, err := NewProxyAIRepository(cfg, newTestLogger()).Chat(context.Background(), "halo")
	assert.ErrorIs(t, err, ErrInvalidAIResponse)
}

func TestProxyAIRepository_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := newTestConfig()
	cfg.Chat.Endpoint = srv.URL
	srv.Close()

	_, err := NewProxyAIRepository(cfg, newTestLogger()).Chat(context.Background(), "halo")
	require.Error(t, err)
	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestGeminiAIRepository_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "No | Symbol | Action"}]}}],
			"usageMetadata": {"totalTokenCount": 42}
		}`))
	}))
	defer srv.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)

	got, err := NewGeminiAIRepository(newTestConfig(), newTestLogger(), client).Chat(context.Background(), "halo")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got, &body))
	assert.Equal(t, "No | Symbol | Action", body["response"])
	assert.Equal(t, "gemini-2.5-flash", body["model"])
}
