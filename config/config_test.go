package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: false,
		},
		{
			name: "release mode",
			config: &Config{
				Server: ServerConfig{GinMode: "release", AppEnv: "production"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsDevelopment()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: true,
		},
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: false,
		},
		{
			name: "staging environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "staging"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsProduction()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8081",
			BaseURL:        "https://cpghub.io",
			AllowedOrigins: []string{"https://cpghub.io"},
		},
		Database:  DatabaseConfig{URL: "postgres://localhost/cpghub"},
		Auth:      AuthConfig{InternalAPIToken: "test-token"},
		ReCAPTCHA: ReCAPTCHAConfig{SecretKey: "recaptcha-secret"},
		Session:   SessionConfig{JWTSecret: "jwt-secret"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing database URL",
			mutate:      func(c *Config) { c.Database.URL = "" },
			expectError: true,
			errorMsg:    "DATABASE_URL is required",
		},
		{
			name:        "missing internal API token",
			mutate:      func(c *Config) { c.Auth.InternalAPIToken = "" },
			expectError: true,
			errorMsg:    "INTERNAL_API_TOKEN is required",
		},
		{
			name:        "missing recaptcha secret",
			mutate:      func(c *Config) { c.ReCAPTCHA.SecretKey = "" },
			expectError: true,
			errorMsg:    "RECAPTCHA_V2_SECRET_KEY is required",
		},
		{
			name:        "missing JWT secret",
			mutate:      func(c *Config) { c.Session.JWTSecret = "" },
			expectError: true,
			errorMsg:    "JWT_SECRET is required",
		},
		{
			name:        "profiling enabled without endpoint",
			mutate:      func(c *Config) { c.Profiling.Enabled = true },
			expectError: true,
			errorMsg:    "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
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

func TestLoad_WithDefaults(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	os.Clearenv()
	os.Setenv("DATABASE_URL", "postgres://localhost/cpghub")
	os.Setenv("INTERNAL_API_TOKEN", "test-token")
	os.Setenv("RECAPTCHA_V2_SECRET_KEY", "recaptcha-secret")
	os.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/app/logs", cfg.Logging.Dir)
	assert.Equal(t, 600, cfg.Cache.LabelTTLSeconds)
	assert.Equal(t, "cpghub-api", cfg.Session.JWTIssuer)
	assert.Equal(t, 24, cfg.Session.SessionTTLHours)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	os.Clearenv()
	os.Setenv("PORT", "9000")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("APP_ENV", "development")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("DATABASE_URL", "postgres://localhost/cpghub")
	os.Setenv("INTERNAL_API_TOKEN", "internal-token-789")
	os.Setenv("RECAPTCHA_V2_SECRET_KEY", "recaptcha-secret")
	os.Setenv("JWT_SECRET", "jwt-secret")
	os.Setenv("STORAGE_BUCKET_NAME", "cpghub-uploads")
	os.Setenv("STORAGE_ENDPOINT", "https://storage.example.com")
	os.Setenv("ANALYTICS_BASE_URL", "https://analytics.example.com")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "internal-token-789", cfg.Auth.InternalAPIToken)
	assert.Equal(t, "recaptcha-secret", cfg.ReCAPTCHA.SecretKey)
	assert.Equal(t, "cpghub-uploads", cfg.Storage.BucketName)
	assert.Equal(t, "https://storage.example.com", cfg.Storage.Endpoint)
	assert.Equal(t, "https://analytics.example.com", cfg.Analytics.BaseURL)
}

func TestLoad_ValidationFailure(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	// Missing required fields
	os.Clearenv()

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
