package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestConsoleHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Level: "warn", NoColor: true})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("engine reset", "engine", "life")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "engine reset")
	assert.Contains(t, out, "engine=life")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Level: "debug", JSON: true})
	require.NoError(t, err)

	log.Debug("field mode", "mode", "scalar")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "field mode", rec["msg"])
	assert.Equal(t, "scalar", rec["mode"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "verbose"})
	assert.Error(t, err)
}
