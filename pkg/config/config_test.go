package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, envPrefix) || key == "DATABASE_URL" || key == "PORT" {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(New()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := map[string]func(*Config){
		"empty addr":        func(c *Config) { c.Addr = "" },
		"bad level":         func(c *Config) { c.LogLevel = "loud" },
		"short secret":      func(c *Config) { c.JWTSecret = "short" },
		"zero margin":       func(c *Config) { c.SoftMargin = 0 },
		"short history":     func(c *Config) { c.HistoryLimit = 3 },
		"unknown zone":      func(c *Config) { c.Timezone = "Mars/Olympus" },
		"bad admin email":   func(c *Config) { c.AdminEmail = "not-an-email" },
		"zero store budget": func(c *Config) { c.StoreTimeout = 0 },
	}
	for name, mutate := range tests {
		cfg := New()
		mutate(cfg)
		assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig, name)
	}
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 20.0, cfg.SoftMargin)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROLES_ADDR", ":9090")
	t.Setenv("ROLES_SOFT_MARGIN", "25")
	t.Setenv("ROLES_STORE_TIMEOUT", "2s")
	t.Setenv("ROLES_TIMEZONE", "Europe/Moscow")
	t.Setenv("DATABASE_URL", "postgres://localhost/roles")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 25.0, cfg.SoftMargin)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "postgres://localhost/roles", cfg.DatabaseURL)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestLoad_PortFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9100"
decay_per_hour: 10
history_limit: 20
log_format: json
`), 0o644))
	t.Setenv("ROLES_CONFIG", path)
	t.Setenv("ROLES_HISTORY_LIMIT", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, 10.0, cfg.DecayPerHour)
	assert.Equal(t, 12, cfg.HistoryLimit, "env wins over file")
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROLES_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROLES_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROLES_ADDR=:9200\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("ROLES_ADDR") })

	LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"), path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9200", cfg.Addr)
}
