package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = New("verbose", "json")
	assert.Error(t, err)
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screener.log")
	log, err := NewWithConfig(Config{Level: "info", Encoding: "json", FilePath: path})
	require.NoError(t, err)

	log.Info("hello", StringField("symbol", "BBCA"))
	_ = log.Sync()
	assert.FileExists(t, path)
}

func TestRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", RunID(ctx))
	assert.Empty(t, RunID(context.Background()))

	fields := withContext(ctx, nil)
	require.Len(t, fields, 1)
	assert.Equal(t, "run_id", fields[0].Key)
}
