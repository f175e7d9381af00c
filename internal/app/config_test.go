package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"PORT", "LOG_MODE", "CORS_ORIGINS", "DB_DRIVER", "DB_PATH", "DB_DSN",
	"JWT_SECRET_KEY", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
	"ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_KEY",
	"MODEL_DATASET_PATH", "FAQ_PATH", "REDIS_ADDR", "REMINDER_SCHEDULE",
}

// clearEnv unsets keys for the duration of the test. An empty value would
// still count as set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/automate.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, "supersecretkey", cfg.Admin.AdminKey)
	assert.Equal(t, "data/car_maintenance.csv", cfg.Data.ModelDatasetPath)
	assert.Equal(t, "0 8 * * *", cfg.Reminders.Schedule)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`server:
  port: "9090"
  cors_origins:
    - https://app.example.com
    - " "
database:
  driver: sqlite
  path: /tmp/garage.db
auth:
  access_token_ttl: 30m
data:
  faq_path: /srv/faq.yaml
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr())
	assert.Equal(t, "/tmp/garage.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "/srv/faq.yaml", cfg.Data.FAQPath)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadConfigRejectsBadDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")

	t.Setenv("DB_DRIVER", "postgres")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")

	t.Setenv("DB_DSN", "host=localhost user=automate dbname=automate")
	_, err = LoadConfig()
	require.NoError(t, err)
}

func TestLoadConfigCORSFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}
