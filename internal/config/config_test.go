package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"HOST", "PORT", "GOOGLE_GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
	"GEMINI_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	"LOG_OUTPUT", "OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_SERVICE_NAME",
}

// clearEnv blanks every key so the host environment cannot leak into a test.
// Empty variables are ignored by viper's AutomaticEnv.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(viper.New(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, "", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, DefaultAllowedOrigins, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.TracingEnabled())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GOOGLE_GEMINI_API_KEY=  file-key-1234567890  \nPORT=6000\nGEMINI_BASE_URL=http://localhost:9999/\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0600))

	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,,")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("OTEL_ENDPOINT", "http://collector:4318")

	cfg, err := load(viper.New(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-key-1234567890", cfg.Gemini.APIKey)
	assert.Equal(t, "7000", cfg.Server.Port, "environment wins over .env")
	assert.Equal(t, "http://localhost:9999", cfg.Gemini.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Telemetry.TracingEnabled())
}

func TestLoad_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{name: "bare seconds", value: "30", want: 30 * time.Second},
		{name: "duration", value: "1m30s", want: 90 * time.Second},
		{name: "padded", value: " 45 ", want: 45 * time.Second},
		{name: "sub-second duration", value: "500ms", wantErr: true},
		{name: "zero seconds", value: "0", wantErr: true},
		{name: "garbage", value: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_TIMEOUT", tt.value)

			cfg, err := load(viper.New(), filepath.Join(t.TempDir(), "missing.env"))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "GEMINI_TIMEOUT")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Gemini.Timeout)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Host: "127.0.0.1", Port: "5000"},
			Gemini: GeminiConfig{Model: "gemini-2.0-flash", BaseURL: "https://example.com", Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid config", mutate: func(*Config) {}},
		{name: "Non-numeric port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
		{name: "Port out of range", mutate: func(c *Config) { c.Server.Port = "70000" }, wantErr: true},
		{name: "Zero timeout", mutate: func(c *Config) { c.Gemini.Timeout = 0 }, wantErr: true},
		{name: "Sub-second timeout", mutate: func(c *Config) { c.Gemini.Timeout = 30 * time.Nanosecond }, wantErr: true},
		{name: "Missing model", mutate: func(c *Config) { c.Gemini.Model = "" }, wantErr: true},
		{name: "Base URL without scheme", mutate: func(c *Config) { c.Gemini.BaseURL = "example.com" }, wantErr: true},
		{name: "Unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
