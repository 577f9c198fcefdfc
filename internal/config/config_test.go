package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Enabled:     false,
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "",
			MaxRetries:  2,
			Temperature: 0.2,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Storage: StorageConfig{
			Backend:      "memory",
			HistoryLimit: 50,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid defaults",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name: "AI enabled without API key",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: true,
			errorMsg:    "AI API key is required",
		},
		{
			name: "AI enabled with API key",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
			},
			expectError: false,
		},
		{
			name: "AI disabled needs no API key",
			mutate: func(c *Config) {
				c.AI.Enabled = false
				c.AI.APIKey = ""
				c.AI.Timeout = 0
			},
			expectError: false,
		},
		{
			name: "non-positive AI timeout",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.Timeout = 0
			},
			expectError: true,
			errorMsg:    "AI timeout must be positive",
		},
		{
			name: "missing server port",
			mutate: func(c *Config) {
				c.Server.Port = ""
			},
			expectError: true,
			errorMsg:    "server port is required",
		},
		{
			name: "unsupported default format",
			mutate: func(c *Config) {
				c.App.DefaultFormat = "xml"
			},
			expectError: true,
			errorMsg:    "invalid default format",
		},
		{
			name: "unknown storage backend",
			mutate: func(c *Config) {
				c.Storage.Backend = "postgres"
			},
			expectError: true,
			errorMsg:    "invalid storage backend",
		},
		{
			name: "redis backend without address",
			mutate: func(c *Config) {
				c.Storage.Backend = "redis"
				c.Storage.Redis.Addr = ""
			},
			expectError: true,
			errorMsg:    "redis address is required",
		},
		{
			name: "redis backend with address",
			mutate: func(c *Config) {
				c.Storage.Backend = "redis"
				c.Storage.Redis.Addr = "localhost:6379"
			},
			expectError: false,
		},
		{
			name: "non-positive history limit",
			mutate: func(c *Config) {
				c.Storage.HistoryLimit = 0
			},
			expectError: true,
			errorMsg:    "history limit must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyTLSDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Server.TLS.Mode = "mutual"
	cfg.Server.TLS.ClientAuthPolicy = ""
	cfg.Server.TLS.MinVersion = ""

	cfg.applyFallbacks()

	assert.Equal(t, "require", cfg.Server.TLS.ClientAuthPolicy)
	assert.Equal(t, "1.2", cfg.Server.TLS.MinVersion)
}

func TestApplyObservabilityDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.ServiceName = "resumelens"
	cfg.Observability.ServiceInstance = ""

	cfg.applyFallbacks()

	assert.NotEmpty(t, cfg.Observability.ServiceInstance)
	assert.Contains(t, cfg.Observability.ServiceInstance, "resumelens")
}
