// Package config provides configuration loading for pagesmithd.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/pagesmith/internal/logging"
)

// Config is the root daemon configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Generator     GeneratorConfig     `koanf:"generator"`
	Cache         CacheConfig         `koanf:"cache"`
	Logging       logging.Config      `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"http_port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// GeneratorConfig holds generation backend settings.
type GeneratorConfig struct {
	// Model is the backend model identifier.
	Model string `koanf:"model"`

	// APIKey authenticates against the generation backend. Usually supplied
	// via the GENERATOR_API_KEY environment variable rather than the file.
	APIKey Secret `koanf:"api_key"`

	// Temperature is passed through to the backend unmodified.
	Temperature float32 `koanf:"temperature"`

	// MaxRetries bounds additional attempts after a transient upstream error.
	MaxRetries int `koanf:"max_retries"`

	// RetryDelay is the base backoff delay; attempt n waits delay << n.
	RetryDelay Duration `koanf:"retry_delay"`
}

// CacheConfig holds prompt-cache settings.
type CacheConfig struct {
	// Enabled toggles backend prompt caching. Caching is always best-effort.
	Enabled bool `koanf:"enabled"`

	// MinTokens is the minimum estimated token count worth caching.
	MinTokens int `koanf:"min_tokens"`

	// TTL is the cache entry lifetime requested from the backend.
	TTL Duration `koanf:"ttl"`
}

// ObservabilityConfig holds OpenTelemetry export settings.
type ObservabilityConfig struct {
	Enabled       bool     `koanf:"enabled"`
	ServiceName   string   `koanf:"service_name"`
	Endpoint      string   `koanf:"endpoint"`
	Protocol      string   `koanf:"protocol"` // "grpc" or "http/protobuf"
	Insecure      bool     `koanf:"insecure"`
	SampleRate    float64  `koanf:"sample_rate"`
	MetricsPeriod Duration `koanf:"metrics_period"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.http_port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}
	if c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required")
	}
	if c.Generator.MaxRetries < 0 {
		return fmt.Errorf("generator.max_retries must be >= 0, got %d", c.Generator.MaxRetries)
	}
	if c.Generator.RetryDelay.Duration() <= 0 {
		return fmt.Errorf("generator.retry_delay must be > 0")
	}
	if c.Cache.MinTokens < 0 {
		return fmt.Errorf("cache.min_tokens must be >= 0, got %d", c.Cache.MinTokens)
	}
	if c.Observability.Enabled {
		if c.Observability.Endpoint == "" {
			return fmt.Errorf("observability.endpoint is required when observability is enabled")
		}
		if p := c.Observability.Protocol; p != "" && p != "grpc" && p != "http/protobuf" {
			return fmt.Errorf("observability.protocol must be 'grpc' or 'http/protobuf', got %q", p)
		}
	}
	return c.Logging.Validate()
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gemini-3-flash-preview"
	}
	if cfg.Generator.Temperature == 0 {
		// The backend default; lower values degrade generation quality for
		// this model family.
		cfg.Generator.Temperature = 1.0
	}
	if cfg.Generator.MaxRetries == 0 {
		cfg.Generator.MaxRetries = 2
	}
	if cfg.Generator.RetryDelay == 0 {
		cfg.Generator.RetryDelay = Duration(time.Second)
	}

	if cfg.Cache.MinTokens == 0 {
		cfg.Cache.MinTokens = 1024
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(time.Hour)
	}

	if cfg.Logging.Format == "" {
		cfg.Logging = *logging.NewDefaultConfig()
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "pagesmithd"
	}
	if cfg.Observability.SampleRate == 0 {
		cfg.Observability.SampleRate = 1.0
	}
	if cfg.Observability.MetricsPeriod == 0 {
		cfg.Observability.MetricsPeriod = Duration(30 * time.Second)
	}
}
