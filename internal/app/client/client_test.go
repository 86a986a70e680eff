package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"keep/internal/app/client/config"
	"keep/internal/domain/item"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:           config.EnvLocal,
		ConfigDir:     dir,
		MasterKeyPath: filepath.Join(dir, "master.key"),
		KeyAlgorithm:  "pbkdf2",
		SessionTTL:    time.Minute,
		Store: config.StoreConfig{
			Driver:   driver,
			DataPath: filepath.Join(dir, "keep.db"),
			Service:  "keep",
			Key:      "keep-items",
		},
	}
}

func TestApp_Lifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)

	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	assert.False(t, app.IsInitialized())

	_, err = app.Vault(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, app.UnlockMasterKey("pw"), ErrNotInitialized)

	require.NoError(t, app.InitMasterKey(ctx, "master-password"))
	assert.True(t, app.IsInitialized())
	assert.True(t, app.IsMasterKeyUnlocked())

	st := app.Status()
	assert.True(t, st.Initialized)
	assert.Equal(t, "PBKDF2-SHA256", st.KeyAlgorithm)
	assert.Equal(t, config.DriverSQLite, st.StoreDriver)

	svc, err := app.Vault(ctx)
	require.NoError(t, err)

	session := app.NewSession()
	defer session.Close()
	require.NoError(t, session.Set(item.FieldTitle, "Gmail"))
	require.NoError(t, session.Set(item.FieldPassword, "secret"))
	created, err := svc.Create(ctx, session.State())
	require.NoError(t, err)

	require.NoError(t, app.LockMasterKey())
	_, err = app.Vault(ctx)
	assert.ErrorIs(t, err, ErrLocked)

	// новый запуск CLI: ключ заблокирован, пока не введен пароль
	again, err := New(cfg, slog.Default())
	require.NoError(t, err)
	assert.True(t, again.IsInitialized())
	assert.False(t, again.IsMasterKeyUnlocked())
	assert.Error(t, again.UnlockMasterKey("wrong"))
	require.NoError(t, again.UnlockMasterKey("master-password"))

	svc, err = again.Vault(ctx)
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.GetID())
	require.NoError(t, err)
	assert.Equal(t, "Gmail", got.GetTitle())
	assert.NoError(t, again.Close())
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverMemory)

	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	require.NoError(t, app.InitMasterKey(ctx, "pw"))

	again, err := New(cfg, slog.Default())
	require.NoError(t, err)
	assert.True(t, again.IsMasterKeyUnlocked())
}

func TestApp_ChangeMasterPassword(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverMemory)

	app, err := New(cfg, slog.Default())
	require.NoError(t, err)
	require.NoError(t, app.InitMasterKey(ctx, "old"))

	assert.Error(t, app.ChangeMasterPassword("bad", "new"))
	require.NoError(t, app.ChangeMasterPassword("old", "new"))

	require.NoError(t, app.LockMasterKey())
	require.NoError(t, app.UnlockMasterKey("new"))
}
