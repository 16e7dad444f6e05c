package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Version is the gateway version advertised in initialize responses,
// the outbound User-Agent, and /healthz.
const Version = "0.1.0"

// Config holds the gateway configuration. It is resolved once at boot and
// passed down explicitly; nothing else reads the environment.
type Config struct {
	// Transport
	Mode string `env:"MODE" envDefault:"http"`
	Port int    `env:"PORT" envDefault:"8080"`

	// Upstream services. An empty base URL selects the local stub
	// implementation for that capability.
	GramadoirBaseURL  string `env:"GRAMADOIR_BASE_URL"`
	SpellcheckBaseURL string `env:"SPELLCHECK_BASE_URL"`

	// DeprecateREST drops the plain JSON-RPC HTTP shim at /v1/grammar/check,
	// leaving only the streamable MCP endpoint.
	DeprecateREST bool `env:"DEPRECATE_REST"`

	// RetryAttempts is the number of retries after the first attempt for
	// each outbound upstream call.
	RetryAttempts int `env:"RETRY_ATTEMPTS" envDefault:"2"`

	// Result cache. An empty REDIS_URL disables caching.
	RedisURL        string `env:"REDIS_URL"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"300"`

	// Observability
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Transport modes.
const (
	ModeHTTP     = "http"      // chi router: /healthz, /mcp, JSON-RPC shim
	ModeStdio    = "stdio"     // line-oriented JSON-RPC on stdin/stdout
	ModeMCPStdio = "mcp-stdio" // framed MCP stdio via the protocol SDK
)

// CacheTTL returns the result cache TTL as a time.Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHTTP, ModeStdio, ModeMCPStdio:
	default:
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be >= 0, got %d", c.RetryAttempts)
	}

	if c.CacheTTLSeconds < 1 {
		return fmt.Errorf("cache TTL must be at least 1s, got %ds", c.CacheTTLSeconds)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
