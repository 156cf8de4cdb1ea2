package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.App.Host)
	assert.Equal(t, "5000", cfg.App.HTTPPort)
	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout())
	assert.Equal(t, "Simple Gin API", cfg.App.ServerHeader)
	assert.Equal(t, "Gin", cfg.App.PoweredBy)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "sequence", cfg.Store.IDStrategy)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 3, cfg.Redis.MaxRetries)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 2, cfg.Redis.MinIdleConn)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("APP_LOCALE", "zh")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_ID_STRATEGY", "legacy")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_POOL_SIZE", "32")
	t.Setenv("REDIS_MAX_RETRIES", "-1")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.HTTPPort)
	assert.Equal(t, "zh", cfg.App.Locale)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "legacy", cfg.Store.IDStrategy)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 32, cfg.Redis.PoolSize)
	assert.Equal(t, -1, cfg.Redis.MaxRetries)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_PORT=9000\nRATE_LIMIT_ENABLED=true\nRATE_LIMIT_RPS=5\nRATE_LIMIT_BURST=7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.HTTPPort)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.RPS)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:   AppConfig{HTTPPort: "5000", Locale: "en"},
			Store: StoreConfig{Driver: DriverMemory, IDStrategy: "sequence"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad strategy", mutate: func(c *Config) { c.Store.IDStrategy = "random" }, wantErr: "unsupported id strategy"},
		{name: "bad locale", mutate: func(c *Config) { c.App.Locale = "fr" }, wantErr: "unsupported locale"},
		{name: "bad port", mutate: func(c *Config) { c.App.HTTPPort = "http" }, wantErr: "invalid HTTP_PORT"},
		{name: "port out of range", mutate: func(c *Config) { c.App.HTTPPort = "70000" }, wantErr: "invalid HTTP_PORT"},
		{
			name: "rate limit without burst",
			mutate: func(c *Config) {
				c.RateLimit = RateLimitConfig{Enabled: true, RPS: 1}
			},
			wantErr: "must be positive",
		},
		{name: "negative redis pool", mutate: func(c *Config) { c.Redis.PoolSize = -1 }, wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
