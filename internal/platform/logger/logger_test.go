package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/config"
)

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	logger, err := setup(config.ServerConfig{LogLevel: "warn", Port: 8080}, &buf)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("component", "test"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"component":"test"`)
	assert.Same(t, logger, slog.Default(), "Setup installs the logger as default")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
		"  warn ": slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	stored := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := context.Background()
	assert.Same(t, fallback, FromContextOrDefault(ctx, fallback))

	ctx = WithLogger(ctx, stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	assert.Same(t, stored, FromContext(ctx))
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandlerDeliversToAllHandlers(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&first, &slog.HandlerOptions{Level: slog.LevelDebug}),
		failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With(slog.String("component", "multi"))

	logger.Info("info record")
	logger.Error("error record")

	assert.Contains(t, first.String(), "info record")
	assert.Contains(t, first.String(), "error record")
	assert.NotContains(t, second.String(), "info record")
	assert.Contains(t, second.String(), `"component":"multi"`)
}

func TestErrorLogWritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "error.log")
	errLog, err := OpenErrorLog(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, errLog.Write(ErrorEntry{
				Method: "POST",
				Status: 500,
				Body:   json.RawMessage(`{"password":"[REDACTED]"}`),
				Error:  "boom",
			}))
		}()
	}
	wg.Wait()
	require.NoError(t, errLog.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 10)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "POST", entry["method"])
		assert.NotEmpty(t, entry["timestamp"])
		assert.Equal(t, "[REDACTED]", entry["body"].(map[string]any)["password"])
	}
}

func TestNilErrorLogIsDisabled(t *testing.T) {
	t.Parallel()

	errLog, err := OpenErrorLog("")
	require.NoError(t, err)
	assert.Nil(t, errLog)
	assert.NoError(t, errLog.Write(ErrorEntry{Method: "GET"}))
	assert.NoError(t, errLog.Close())
}
