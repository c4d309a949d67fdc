package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdirTemp(t)

	// A clean machine has no .env; defaults alone must be enough.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadReadsEnvFile(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".env", []byte("STORAGE_BACKEND=redis\nLOG_FORMAT=console\n"), 0o644))
	// godotenv exports the file into the process env; undo that so
	// later tests see a clean slate.
	t.Cleanup(func() {
		_ = os.Unsetenv("STORAGE_BACKEND")
		_ = os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATA_DIR", "/tmp/institute-data")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/institute-data", cfg.Storage.DataDir)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_BACKEND", "bolt")

	_, err := Load()
	require.Error(t, err)
}
