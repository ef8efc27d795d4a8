package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alkime/maffie/internal/config"
)

// SetupLogger configures structured JSON logging for long-running hosts and
// installs it as the default logger.
func SetupLogger(cfg *config.Config) *slog.Logger {
	return setup(os.Stdout, cfg)
}

// SetupFileLogger is like SetupLogger but writes to w. The terminal UI owns
// stdout, so it logs elsewhere.
func SetupFileLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return setup(w, cfg)
}

func setup(w io.Writer, cfg *config.Config) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(cfg),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// Level determines the log level from the environment and LOG_LEVEL.
func Level(cfg *config.Config) slog.Level {
	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return logLevel
}
