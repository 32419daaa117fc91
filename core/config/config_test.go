package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalog-manager/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "catalog.db", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "catalog-snapshots", cfg.Storage.Bucket)
	assert.Equal(t, 14, cfg.Library.LoanDays)
	assert.False(t, cfg.Library.GuestBorrow)

	assert.False(t, cfg.Sync.Enabled())
	assert.Equal(t, 1500*time.Millisecond, cfg.Sync.Debounce())
	assert.Equal(t, 5*time.Second, cfg.Sync.MinInterval())
	assert.Equal(t, 30*time.Second, cfg.Sync.Cooldown())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SYNC_REMOTE_URL", "https://example.test/exec")
	t.Setenv("LIBRARY_LOAN_DAYS", "7")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://example.test/exec", cfg.Sync.RemoteURL)
	assert.True(t, cfg.Sync.Enabled())
	assert.Equal(t, 7, cfg.Library.LoanDays)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=7070\nSYNC_DEBOUNCE_MS=2000\n"), 0o600)
	require.NoError(t, err)

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Sync.Debounce())
}
