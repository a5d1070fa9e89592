package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir into an empty directory so no stray .env or config file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{"PORT", "DB_FILE", "TRACKER_SERVER_PORT", "TRACKER_DATABASE_PATH", "TRACKER_BACKUP_BUCKET"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "tracker.db", cfg.Database.Path)
	assert.Equal(t, "public", cfg.Static.PublicDir)
	assert.Equal(t, "views", cfg.Static.ViewsDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Backup.Bucket)
}

func TestLoadLegacyEnvNames(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DB_FILE", "data/other.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "data/other.db", cfg.Database.Path)
}

func TestLoadPrefixedEnvWins(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8081")
	t.Setenv("TRACKER_SERVER_PORT", "9090")
	t.Setenv("TRACKER_BACKUP_BUCKET", "backups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "backups", cfg.Backup.Bucket)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("DB_FILE=from-dotenv.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DB_FILE") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.db", cfg.Database.Path)
}

func TestLoadRejectsBadPort(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}
