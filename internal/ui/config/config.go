package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

// Config is the ui server configuration, read from the environment.
//
// API_URL is the public address of the e-warranty backend. INTERNAL_API_URL, when set, is used instead -
// this allows the ui to reach the backend over an internal network (e.g docker compose) while links shown to users keep the public address.
type Config struct {
	Environment    string        `env:"ENVIRONMENT,default=dev"`
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=3000"`
	LogLevel       string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	APIURL         string        `env:"API_URL"`
	InternalAPIURL string        `env:"INTERNAL_API_URL"`
	ClientTimeout  time.Duration `env:"CLIENT_TIMEOUT,default=10s"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST,default=20"`
	MetricsEnabled bool          `env:"METRICS_ENABLED,default=true"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

const (
	// AccessTokenCookieName is the cookie set by the e-warranty login page. Its value is forwarded to the backend as a bearer token.
	AccessTokenCookieName = "accessToken"
)

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateUIConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// APIRoot returns the backend address the ui should call.
// An empty result means no address was configured - the endpoint resolver supplies the default.
func (c *Config) APIRoot() string {
	if c.InternalAPIURL != "" {
		return c.InternalAPIURL
	}
	return c.APIURL
}

func validateUIConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.ClientTimeout < 0 {
		return fmt.Errorf("client timeout cannot be negative, got %v", cfg.ClientTimeout)
	}

	if cfg.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per second, got %d", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", cfg.RateLimitBurst)
	}

	return nil
}
