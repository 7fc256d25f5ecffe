package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads and restores them when the test ends
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"INFOAPI_PROFILE", "INFOAPI_PROFILE_FILE", "INFOAPI_HTTP_PORT", "INFOAPI_GRPC_PORT",
		"INFOAPI_METRICS_ENABLED", "LOG_LEVEL", "LOG_FORMAT",
		"HTTP_READ_HEADER_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"HTTP_CORS_ALLOW_ORIGIN", "TIMEOUT_SHUTDOWN",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "api1", cfg.Profile)
	assert.Empty(t, cfg.ProfileFile)
	assert.Equal(t, 0, cfg.HTTPPort)
	assert.False(t, cfg.GRPCEnabled())
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, "*", cfg.HTTP.CORSAllowOrigin)
	assert.Equal(t, 15*time.Second, cfg.Timeouts.ShutdownTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("INFOAPI_PROFILE", "maquina2")
	t.Setenv("INFOAPI_HTTP_PORT", "5001")
	t.Setenv("INFOAPI_GRPC_PORT", "5002")
	t.Setenv("INFOAPI_METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("TIMEOUT_SHUTDOWN", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "maquina2", cfg.Profile)
	assert.Equal(t, 5001, cfg.ResolveHTTPPort(5000))
	assert.True(t, cfg.GRPCEnabled())
	assert.Equal(t, 5002, cfg.GRPCPort)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.ShutdownTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("INFOAPI_HTTP_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestResolveHTTPPort(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 3000, cfg.ResolveHTTPPort(3000))

	cfg.HTTPPort = 8080
	assert.Equal(t, 8080, cfg.ResolveHTTPPort(3000))
}

func TestCheckPorts(t *testing.T) {
	tests := []struct {
		name        string
		httpPort    int
		grpcPort    int
		profilePort int
		wantErr     bool
	}{
		{name: "grpc disabled", profilePort: 3000},
		{name: "distinct from profile port", grpcPort: 50051, profilePort: 3000},
		{name: "collides with profile port", grpcPort: 3000, profilePort: 3000, wantErr: true},
		{name: "explicit http port avoids profile port", httpPort: 8080, grpcPort: 3000, profilePort: 3000},
		{name: "collides with explicit http port", httpPort: 8080, grpcPort: 8080, profilePort: 3000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{HTTPPort: tt.httpPort, GRPCPort: tt.grpcPort}
			err := cfg.CheckPorts(tt.profilePort)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Profile:   "api1",
			LogLevel:  "info",
			LogFormat: "json",
			HTTP: HTTPConfig{
				ReadHeaderTimeout: time.Second,
				ReadTimeout:       time.Second,
				WriteTimeout:      time.Second,
				IdleTimeout:       time.Second,
			},
			Timeouts: TimeoutConfig{ShutdownTimeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "profile file only", mutate: func(c *Config) { c.Profile = ""; c.ProfileFile = "p.yaml" }},
		{name: "no profile", mutate: func(c *Config) { c.Profile = "" }, wantErr: true},
		{name: "negative http port", mutate: func(c *Config) { c.HTTPPort = -1 }, wantErr: true},
		{name: "http port too large", mutate: func(c *Config) { c.HTTPPort = 65536 }, wantErr: true},
		{name: "grpc port too large", mutate: func(c *Config) { c.GRPCPort = 65536 }, wantErr: true},
		{name: "same ports", mutate: func(c *Config) { c.HTTPPort = 3000; c.GRPCPort = 3000 }, wantErr: true},
		{name: "zero read timeout", mutate: func(c *Config) { c.HTTP.ReadTimeout = 0 }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Timeouts.ShutdownTimeout = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
