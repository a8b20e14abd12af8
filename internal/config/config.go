package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Global singleton kept for the cron reload job
var globalConfig *Config

// Config holds all environment backed configuration for kawan-server.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// Usage storage. When DATABASE_URL is set the usage store is backed by
	// Postgres, otherwise by a local JSON file at UsageFile.
	DatabaseURL string `env:"DATABASE_URL"`
	UsageFile   string `env:"USAGE_FILE" envDefault:"data/token-usage.json"`

	// Inference provider (OpenAI-compatible)
	ProviderBaseURL string   `env:"PROVIDER_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	ProviderAPIKey  string   `env:"PROVIDER_API_KEY"`
	FallbackModels  []string `env:"FALLBACK_MODELS" envSeparator:"," envDefault:"llama-3.3-70b-versatile,llama-3.1-8b-instant,gemma2-9b-it"`

	// Scheduled jobs
	ModelPollEnabled         bool `env:"MODEL_POLL_ENABLED" envDefault:"true"`
	ModelPollIntervalMinutes int  `env:"MODEL_POLL_INTERVAL_MINUTES" envDefault:"15"`
	UsageSnapshotEnabled     bool `env:"USAGE_SNAPSHOT_ENABLED" envDefault:"true"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"kawan-server"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"kawan"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	// Best effort: a missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if len(cfg.FallbackModels) == 0 {
		return nil, fmt.Errorf("FALLBACK_MODELS must name at least one model")
	}
	for i, m := range cfg.FallbackModels {
		cfg.FallbackModels[i] = strings.TrimSpace(m)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// UsePostgres reports whether the relational usage store backend is selected.
func (c *Config) UsePostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
