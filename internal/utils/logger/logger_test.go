package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"keep/internal/app/client/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	_, ok := logger.Handler().(*PrettyHandler)
	assert.True(t, ok)
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	// --debug в prod включает debug
	assert.True(t, NewWithLevel(config.EnvProd, "debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewWithLevel(config.EnvLocal, "warn").Enabled(ctx, slog.LevelInfo))
	// неизвестный уровень - как New
	assert.False(t, NewWithLevel(config.EnvProd, "").Enabled(ctx, slog.LevelDebug))
	assert.False(t, Discard().Enabled(ctx, slog.LevelError))
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("component", "vault_service").WithGroup("item").Info("item created", "id", "gmail", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "item created")
	assert.Contains(t, out, `"component":"vault_service"`)
	assert.Contains(t, out, `"item":{`)
	assert.Contains(t, out, `"id":"gmail"`)
	assert.Contains(t, out, `"error":"boom"`)
}
