package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbols(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "normalizes entries", body: ` [" bbca ", "tlkm", ""] `, want: []string{"BBCA", "TLKM"}},
		{name: "empty array", body: `[]`, want: []string{}},
		{name: "html page", body: `<!DOCTYPE html><html></html>`, wantErr: true},
		{name: "object payload", body: `{"symbols": ["BBCA"]}`, wantErr: true},
		{name: "array of numbers", body: `[1, 2]`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSymbols([]byte(tc.body))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSymbolList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSymbolRepository_File(t *testing.T) {
	repo := NewSymbolRepository(newTestConfig(), newTestLogger())

	got, err := repo.GetSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BBCA", "TLKM", "GOTO"}, got)
}

func TestSymbolRepository_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data.json":
			_, _ = w.Write([]byte(`["antm", "MDKA"]`))
		case "/index.html":
			_, _ = w.Write([]byte(`<html><body>not found</body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := newTestConfig()
	cfg.Screener.SymbolSource = srv.URL + "/data.json"
	got, err := NewSymbolRepository(cfg, newTestLogger()).GetSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ANTM", "MDKA"}, got)

	cfg.Screener.SymbolSource = srv.URL + "/index.html"
	_, err = NewSymbolRepository(cfg, newTestLogger()).GetSymbols(context.Background())
	assert.ErrorIs(t, err, ErrInvalidSymbolList)

	cfg.Screener.SymbolSource = srv.URL + "/missing.json"
	_, err = NewSymbolRepository(cfg, newTestLogger()).GetSymbols(context.Background())
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
}

func TestSymbolRepository_MissingFile(t *testing.T) {
	cfg := newTestConfig()
	cfg.Screener.SymbolSource = "testdata/does-not-exist.json"

	_, err := NewSymbolRepository(cfg, newTestLogger()).GetSymbols(context.Background())
	assert.Error(t, err)
}
