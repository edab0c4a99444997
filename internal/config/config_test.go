package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flightplanner/client/internal/config"
)

// clearEnv blanks every variable Load reads so tests do not depend on the
// developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_BASE", "API_ORIGIN", "API_KEY", "API_TIMEOUT", "LOG_LEVEL", "PORT",
		"BACKEND_URL", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that every value falls back to its default and
// that a missing API key is not an error.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "", cfg.APIBase)
	require.Equal(t, "http://localhost:5173", cfg.APIOrigin)
	require.Equal(t, "", cfg.APIKey)
	require.False(t, cfg.Configured())
	require.Equal(t, 10*time.Second, cfg.APITimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "5173", cfg.Port)
	require.Equal(t, "http://localhost:3001", cfg.BackendURL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, 100, cfg.RateLimitRPS)
	require.Equal(t, 20, cfg.RateLimitBurst)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE", " https://planner.example.com/api/ ")
	t.Setenv("API_ORIGIN", "https://app.example.com")
	t.Setenv("API_KEY", " secret ")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "http://backend:3001")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "2")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "https://planner.example.com/api/", cfg.APIBase)
	require.Equal(t, "https://app.example.com", cfg.APIOrigin)
	require.Equal(t, "secret", cfg.APIKey)
	require.True(t, cfg.Configured())
	require.Equal(t, 3*time.Second, cfg.APITimeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "http://backend:3001", cfg.BackendURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 5, cfg.RateLimitRPS)
	require.Equal(t, 2, cfg.RateLimitBurst)
}

// TestLoad_blankKeyIsUnconfigured verifies that a whitespace-only API key
// counts as absent.
func TestLoad_blankKeyIsUnconfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "   ")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.False(t, cfg.Configured())
}

// TestLoad_invalid verifies that malformed values are reported by name.
func TestLoad_invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-1")
	t.Setenv("BACKEND_URL", "backend:3001")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "API_TIMEOUT")
	require.ErrorContains(t, err, "RATE_LIMIT_RPS")
	require.ErrorContains(t, err, "BACKEND_URL")
	require.NotContains(t, err.Error(), "RATE_LIMIT_BURST")
}
