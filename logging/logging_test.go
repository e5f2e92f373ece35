package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormats(t *testing.T) {
	t.Run("auto on a buffer is json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{}, &buf)
		require.NoError(t, err)

		logger.Info("mapped route", "pattern", "/users")
		assert.Contains(t, buf.String(), `"msg":"mapped route"`)
		assert.Contains(t, buf.String(), `"pattern":"/users"`)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Format: "TEXT"}, &buf)
		require.NoError(t, err)

		logger.Info("mapped route", "pattern", "/users")
		assert.Contains(t, buf.String(), `msg="mapped route" pattern=/users`)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Config{Format: "xml"}, &bytes.Buffer{})
		assert.ErrorContains(t, err, `unknown format "xml"`)
	})
}

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: FormatJSON, Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
