package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"keep/internal/app/client/config"
)

// New создает логгер для окружения: local - цветной вывод с debug,
// dev - JSON с debug, prod - JSON с info.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// NewWithLevel создает логгер окружения с явным уровнем (LOG_LEVEL, --debug).
func NewWithLevel(env, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		return New(env)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if env == config.EnvLocal {
		return slog.New(NewPrettyHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// ParseLevel разбирает уровень логирования; пустая строка не распознается.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Discard возвращает логгер, который ничего не пишет.
func Discard() *slog.Logger {
	return slog.New(NewPrettyHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func setupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
