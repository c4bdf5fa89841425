package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiration)
	assert.Equal(t, 15*time.Minute, cfg.LoginRateLimitWindow)
	assert.Equal(t, 5, cfg.LoginRateLimitMaxAttempts)
	assert.Equal(t, time.Minute, cfg.RefreshRateLimitWindow)
	assert.Equal(t, 30, cfg.RefreshRateLimitMaxAttempts)
	assert.Equal(t, "staffdocs", cfg.MetricsNamespace)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_ACCESS_TOKEN_EXPIRATION_SECONDS", "300")
	t.Setenv("RATE_LIMIT_LOGIN_MAX_ATTEMPTS", "3")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.AccessTokenSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenExpiration)
	assert.Equal(t, 3, cfg.LoginRateLimitMaxAttempts)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.logLevel}
		assert.Equal(t, tt.want, cfg.GetGinMode())
	}
}
