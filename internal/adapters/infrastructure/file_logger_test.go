package infrastructure

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

func newTestFileLogger(t *testing.T, level slog.Level) (*FileLoggerAdapter, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "skywatch.log")
	logger, err := NewFileLoggerAdapter(logPath, level)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger, logPath
}

func readLogLines(t *testing.T, logPath string) []map[string]interface{} {
	t.Helper()

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line should be valid JSON: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestFileLoggerAdapter_NewFileLoggerAdapter(t *testing.T) {
	t.Run("NestedDirectoriesCreated", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "deep", "nested", "skywatch.log")
		logger, err := NewFileLoggerAdapter(nested, slog.LevelInfo)
		require.NoError(t, err)
		defer func() { _ = logger.Close() }()

		assert.DirExists(t, filepath.Dir(nested))
		assert.FileExists(t, nested)
	})

	t.Run("EmptyPath", func(t *testing.T) {
		logger, err := NewFileLoggerAdapter("", slog.LevelInfo)
		assert.Nil(t, logger)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "log file path cannot be empty")
	})
}

func TestFileLoggerAdapter_LogLevels(t *testing.T) {
	tests := []struct {
		level   string
		message string
		log     func(l ports.Logger, msg string, fields ...ports.Field)
		fields  []ports.Field
	}{
		{"DEBUG", "Location evaluated", ports.Logger.Debug, []ports.Field{ports.F("location", "Keystone")}},
		{"INFO", "Sending notification", ports.Logger.Info, []ports.Field{ports.F("subject", "Weather notification: Keystone")}},
		{"WARN", "Retrying forecast request", ports.Logger.Warn, []ports.Field{ports.F("attempt", 2), ports.F("backoff", "3s")}},
		{"ERROR", "Forecast request failed", ports.Logger.Error, []ports.Field{ports.F("duration_ms", 5000)}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, logPath := newTestFileLogger(t, slog.LevelDebug)
			tt.log(logger, tt.message, tt.fields...)

			entries := readLogLines(t, logPath)
			require.Len(t, entries, 1)
			entry := entries[0]

			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.message, entry["message"])

			timestamp, ok := entry["timestamp"].(string)
			require.True(t, ok)
			_, err := time.Parse(time.RFC3339Nano, timestamp)
			assert.NoError(t, err)

			for _, field := range tt.fields {
				// JSON numbers decode as float64
				if expectedInt, ok := field.Value.(int); ok {
					assert.Equal(t, float64(expectedInt), entry[field.Key])
				} else {
					assert.Equal(t, field.Value, entry[field.Key])
				}
			}
		})
	}
}

func TestFileLoggerAdapter_LevelFilter(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept too")

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}

func TestFileLoggerAdapter_ErrorFieldsAreStrings(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelInfo)

	logger.Error("Notification run failed", ports.F("error", errors.NewEmailError("failed to connect", nil)))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "EMAIL_ERROR: failed to connect", entries[0]["error"])
}

func TestFileLoggerAdapter_ReservedKeysWin(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelInfo)

	logger.Info("real message", ports.F("message", "shadow"), ports.F("level", "nope"))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "real message", entries[0]["message"])
	assert.Equal(t, "INFO", entries[0]["level"])
}

func TestFileLoggerAdapter_ConcurrentLogging(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelInfo)

	const goroutines, perGoroutine = 10, 5
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				logger.Info(fmt.Sprintf("Message from goroutine %d", id),
					ports.F("goroutine_id", id),
					ports.F("message_id", j))
			}
		}(i)
	}
	wg.Wait()

	entries := readLogLines(t, logPath)
	assert.Len(t, entries, goroutines*perGoroutine)
	for _, entry := range entries {
		assert.Contains(t, entry, "goroutine_id")
		assert.Contains(t, entry, "message_id")
	}
}

func TestFileLoggerAdapter_AppendsAcrossInstances(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")

	first, err := NewFileLoggerAdapter(logPath, slog.LevelInfo)
	require.NoError(t, err)
	first.Info("First message")
	require.NoError(t, first.Close())

	second, err := NewFileLoggerAdapter(logPath, slog.LevelInfo)
	require.NoError(t, err)
	second.Info("Second message")
	require.NoError(t, second.Close())

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, "First message", entries[0]["message"])
	assert.Equal(t, "Second message", entries[1]["message"])
}

func TestFileLoggerAdapter_UnmarshalableField(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelInfo)

	logger.Info("Test message", ports.F("channel", make(chan int)))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed to marshal log entry", entries[0]["message"])
	assert.Equal(t, "Test message", entries[0]["original"])
}

func TestFileLoggerAdapter_WriteAfterClose(t *testing.T) {
	logger, logPath := newTestFileLogger(t, slog.LevelInfo)
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	logger.Info("ignored")
	assert.Empty(t, readLogLines(t, logPath))
}

func TestFileLoggerAdapter_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	_, logPath := newTestFileLogger(t, slog.LevelInfo)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func BenchmarkFileLoggerAdapter_Info(b *testing.B) {
	logger, err := NewFileLoggerAdapter(filepath.Join(b.TempDir(), "benchmark.log"), slog.LevelInfo)
	require.NoError(b, err)
	defer func() { _ = logger.Close() }()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("Forecast request completed",
				ports.F("url", "https://api.weather.gov/gridpoints/SEW/1,2"),
				ports.F("event", "response"),
				ports.F("duration_ms", 120))
		}
	})
}
