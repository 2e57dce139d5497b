package sysinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Debug("debug message", "key", "value")
	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "key=value")

	buf.Reset()
	adapter.Info("info message", "count", 42)
	assert.Contains(t, buf.String(), "count=42")

	buf.Reset()
	adapter.Warn("warn message")
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	adapter.Error("error message", "err", "failed")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestNewSlogAdapterNil(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, "json")

	logger.Info("hidden")
	assert.Empty(t, buf.String(), "info is below the warn threshold")

	logger.Warn("shown", "operation", "free")
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "free", record["operation"])

	buf.Reset()
	NewLogger(&buf, slog.LevelInfo, "text").Info("plain")
	assert.True(t, strings.HasPrefix(buf.String(), "time="))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestClientLogsCommandsAndAdvisories(t *testing.T) {
	var buf bytes.Buffer
	runner := newScriptRunner()
	runner.outputs["free -m"] = "header\nMem: 10 0 2 0 1 1\n"

	c := New(&Options{
		GOOS:   "linux",
		Runner: runner,
		Native: &mockNative{},
		Logger: NewLogger(&buf, slog.LevelDebug, "text"),
	})
	_, err := c.Free(context.Background(), "furlongs")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "furlongs")
	assert.Contains(t, out, `command="free -m"`)
}
