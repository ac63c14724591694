package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFrom_ReadsFileAndDefaults(t *testing.T) {
	path := writeEnvFile(t, "JWT_SECRET=file-secret\nAPP_PORT=9090\nDB_DRIVER=SQLite\nCACHE_TTL=30s\nAPP_BASE_URL=https://clinic.example/\n")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "https://clinic.example", cfg.App.BaseURL)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "admin_token", cfg.Cookie.Name)
	assert.Equal(t, 2*time.Minute, cfg.Script.Timeout)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.NotEmpty(t, cfg.Script.Binary)
}

func TestLoadConfigFrom_EnvironmentOverridesFile(t *testing.T) {
	path := writeEnvFile(t, "JWT_SECRET=file-secret\nJWT_EXPIRY=1h\n")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRY", "90m")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiry)
}

func TestLoadConfigFrom_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "only-env")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "only-env", cfg.JWT.Secret)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
}

func TestLoadConfigFrom_RequiresSecret(t *testing.T) {
	path := writeEnvFile(t, "APP_PORT=8080\n")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfigFrom(path)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadConfigFrom_InvalidDurationFallsBack(t *testing.T) {
	path := writeEnvFile(t, "JWT_SECRET=x\nSCRIPT_TIMEOUT=soon\n")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Script.Timeout)
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.True(t, AppConfig{Env: "Production"}.IsProduction())
	assert.False(t, AppConfig{Env: "development"}.IsProduction())
}
