package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/alkime/maffie/internal/config"
	"github.com/alkime/maffie/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		env, level string
		want       slog.Level
	}{
		{"production", "info", slog.LevelInfo},
		{"development", "info", slog.LevelDebug},
		{"production", "debug", slog.LevelDebug},
		{"production", "warn", slog.LevelWarn},
		{"development", "error", slog.LevelError},
	}

	for _, tt := range tests {
		cfg := &config.Config{Env: tt.env, LogLevel: tt.level}
		assert.Equal(t, tt.want, logger.Level(cfg), "%s/%s", tt.env, tt.level)
	}
}

func TestSetupFileLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := logger.SetupFileLogger(&buf, &config.Config{Env: "production", LogLevel: "info"})

	log.Debug("hidden")
	log.Info("widget changed", "widget", "volume")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "widget changed", line["msg"])
	assert.Equal(t, "volume", line["widget"])
	assert.Same(t, log, slog.Default())
}
