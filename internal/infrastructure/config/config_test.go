package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "WEBHOOK_URL",
		"SALESDASH_APP_ENV", "SALESDASH_APP_PORT", "SALESDASH_WEBHOOK_URL",
		"SALESDASH_UPSTREAM_BASE_URL", "SALESDASH_UPSTREAM_TIMEOUT",
		"SALESDASH_HTTP_CORS_ALLOW_ORIGINS", "SALESDASH_TELEMETRY_SAMPLING_RATIO",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "salesdash-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3001", cfg.App.Port)
	assert.Equal(t, ":3001", cfg.App.Addr())
	assert.Equal(t, "logs/http_trace.jsonl", cfg.TraceLog.Path)
	assert.Equal(t, "FakeStoreAPI", cfg.TraceLog.Source)
	assert.Equal(t, "https://fakestoreapi.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Upstream.MaxResponseBytes)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, 5*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, "salesdash-backend", cfg.Telemetry.ServiceName)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_PrefixedEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALESDASH_APP_PORT", "9000")
	t.Setenv("SALESDASH_UPSTREAM_BASE_URL", "http://localhost:4000/")
	t.Setenv("SALESDASH_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("SALESDASH_WEBHOOK_URL", "http://hooks.local/sales")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "http://localhost:4000", cfg.Upstream.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "http://hooks.local/sales", cfg.Webhook.URL)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4321")
	t.Setenv("WEBHOOK_URL", "https://example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4321", cfg.App.Port)
	assert.Equal(t, "https://example.com/hook", cfg.Webhook.URL)

	t.Run("prefixed variable wins", func(t *testing.T) {
		t.Setenv("SALESDASH_APP_PORT", "5000")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "5000", cfg.App.Port)
	})
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
env = "production"
port = "8081"

[upstream]
base_url = "http://fakestore.internal"
timeout = "2s"

[http]
cors_allow_origins = ["https://dashboard.example.com"]
rate_limit_enabled = true

[telemetry]
enabled = true
sampling_ratio = 0.25
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "http://fakestore.internal", cfg.Upstream.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.HTTP.CORSAllowOrigins)
	assert.True(t, cfg.HTTP.RateLimitEnabled)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 0.25, cfg.Telemetry.SamplingRatio)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"non numeric port", func(c *Config) { c.App.Port = "http" }, "app.port"},
		{"port out of range", func(c *Config) { c.App.Port = "70000" }, "app.port"},
		{"relative upstream", func(c *Config) { c.Upstream.BaseURL = "fakestoreapi.com" }, "upstream.base_url"},
		{"bad webhook scheme", func(c *Config) { c.Webhook.URL = "ftp://hooks.local" }, "webhook.url"},
		{"negative timeout", func(c *Config) { c.Upstream.Timeout = -time.Second }, "upstream.timeout"},
		{"sampling ratio", func(c *Config) { c.Telemetry.SamplingRatio = 1.5 }, "sampling_ratio"},
		{"wildcard cors in production", func(c *Config) {
			c.App.Env = "production"
			c.HTTP.CORSAllowOrigins = []string{"*"}
		}, "cors_allow_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults_ProductionHasNoWildcardOrigin(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "production"}}
	applyDefaults(cfg)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}
