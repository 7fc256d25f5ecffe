package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the info service
type Config struct {
	// Instance selection
	Profile     string `env:"INFOAPI_PROFILE" envDefault:"api1"`
	ProfileFile string `env:"INFOAPI_PROFILE_FILE"`

	// Server configuration
	HTTPPort       int    `env:"INFOAPI_HTTP_PORT" envDefault:"0"` // 0 uses the profile port
	GRPCPort       int    `env:"INFOAPI_GRPC_PORT" envDefault:"0"` // 0 disables gRPC health
	MetricsEnabled bool   `env:"INFOAPI_METRICS_ENABLED" envDefault:"true"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server settings
	HTTP HTTPConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	CORSAllowOrigin   string        `env:"HTTP_CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"15s"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; it never overrides
// variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Profile == "" && c.ProfileFile == "" {
		return fmt.Errorf("a profile name or profile file is required")
	}

	// Validate server ports
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("HTTP and gRPC ports must differ: %d", c.GRPCPort)
	}

	// Validate timeouts
	if c.HTTP.ReadHeaderTimeout <= 0 || c.HTTP.ReadTimeout <= 0 ||
		c.HTTP.WriteTimeout <= 0 || c.HTTP.IdleTimeout <= 0 {
		return fmt.Errorf("HTTP timeouts must be positive")
	}
	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	// Validate log settings
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.LogFormat)
	}

	return nil
}

// ResolveHTTPPort returns the configured HTTP port, falling back to the
// profile's port when none is set
func (c *Config) ResolveHTTPPort(profilePort int) int {
	if c.HTTPPort != 0 {
		return c.HTTPPort
	}
	return profilePort
}

// CheckPorts rejects a gRPC port that collides with the HTTP port the
// instance will actually bind, including one inherited from the profile
func (c *Config) CheckPorts(profilePort int) error {
	if httpPort := c.ResolveHTTPPort(profilePort); c.GRPCPort != 0 && c.GRPCPort == httpPort {
		return fmt.Errorf("HTTP and gRPC ports must differ: %d", httpPort)
	}
	return nil
}

// GRPCEnabled reports whether the gRPC health server should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort != 0
}
