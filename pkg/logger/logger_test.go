package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, slog.LevelInfo).WithField("run_id", "abc").WithFields(map[string]interface{}{"location": "Keystone"})

	l.Info("evaluated")
	l.Debug("dropped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "evaluated", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "Keystone", entry["location"])
}

func TestIsValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "Info", " warn ", "warning", "error"} {
		assert.True(t, IsValidLevel(level), level)
	}
	for _, level := range []string{"", "verbose", "trace"} {
		assert.False(t, IsValidLevel(level), level)
	}
}
