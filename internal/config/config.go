// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-critic/internal/logger"
)

// MinTimeout is the shortest provider timeout accepted.
const MinTimeout = time.Second

// DefaultAllowedOrigins are the frontend origins allowed to call the API.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:3001",
	"https://ai-powered-code-review-gold.vercel.app",
}

// Config holds the application's configuration values.
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	CORS      CORSConfig
	Logging   logger.Config
	Telemetry TelemetryConfig
}

// ServerConfig holds the inbound HTTP listener settings.
type ServerConfig struct {
	Host string
	Port string
}

// GeminiConfig holds the settings of the review provider.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// TelemetryConfig controls OpenTelemetry tracing. Tracing is off unless an
// endpoint is configured.
type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates the result. A missing provider API key
// is not an error here: the review client reports it per request.
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("GEMINI_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("OTEL_ENABLED", true)
	v.SetDefault("OTEL_SERVICE_NAME", "code-critic")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "file", envFile, "error", err)
		}
	}

	timeout, err := parseTimeout(v.GetString("GEMINI_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("HOST"),
			Port: v.GetString("PORT"),
		},
		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(v.GetString("GOOGLE_GEMINI_API_KEY")),
			Model:   v.GetString("GEMINI_MODEL"),
			BaseURL: strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
			Timeout: timeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
		},
		Telemetry: TelemetryConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			Endpoint:    v.GetString("OTEL_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Server.Port)
	}
	if c.Gemini.Timeout < MinTimeout {
		return fmt.Errorf("GEMINI_TIMEOUT must be at least %s, got %s", MinTimeout, c.Gemini.Timeout)
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL must be set")
	}
	if !strings.HasPrefix(c.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.Gemini.BaseURL, "https://") {
		return fmt.Errorf("GEMINI_BASE_URL must be an http(s) URL, got %q", c.Gemini.BaseURL)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.Logging.Format)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// TracingEnabled reports whether spans should be exported.
func (c TelemetryConfig) TracingEnabled() bool {
	return c.Enabled && c.Endpoint != ""
}

// parseTimeout accepts a Go duration ("30s", "1m") or a bare number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("GEMINI_TIMEOUT must be a duration such as 30s or a number of seconds, got %q", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
