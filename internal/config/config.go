// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration shared by the planner CLI and the dev proxy.
// Values are populated by Load from environment variables.
type Config struct {
	// APIBase overrides the API base path ("/api" when blank). It may be an
	// absolute URL. Resolution happens once, when the API client is built.
	APIBase string

	// APIOrigin is the scheme and host relative API URLs are resolved against.
	// Defaults to "http://localhost:5173" (the dev proxy).
	APIOrigin string

	// APIKey is sent as x-api-key. Optional: without it the client is
	// unconfigured and the pages stay disabled.
	APIKey string

	// APITimeout bounds a single API round trip. Defaults to 10s.
	APITimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Port is the TCP port the dev proxy listens on. Defaults to "5173".
	Port string

	// BackendURL is where the dev proxy forwards API traffic.
	// Defaults to "http://localhost:3001".
	BackendURL string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RateLimitRPS and RateLimitBurst configure the dev proxy's token bucket.
	// Defaults: 100 requests per second, burst 20.
	RateLimitRPS   int
	RateLimitBurst int
}

// Configured reports whether an API key is present. Features that talk to
// the API are disabled when it is not.
func (c Config) Configured() bool {
	return c.APIKey != ""
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable that is set but malformed.
func Load() (Config, error) {
	cfg := Config{
		APIBase:     strings.TrimSpace(os.Getenv("API_BASE")),
		APIOrigin:   getEnv("API_ORIGIN", "http://localhost:5173"),
		APIKey:      strings.TrimSpace(os.Getenv("API_KEY")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnv("PORT", "5173"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3001"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var invalid []string

	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		invalid = append(invalid, "API_TIMEOUT")
	}
	cfg.APITimeout = timeout

	if cfg.RateLimitRPS, err = strconv.Atoi(getEnv("RATE_LIMIT_RPS", "100")); err != nil || cfg.RateLimitRPS <= 0 {
		invalid = append(invalid, "RATE_LIMIT_RPS")
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil || cfg.RateLimitBurst <= 0 {
		invalid = append(invalid, "RATE_LIMIT_BURST")
	}

	for key, raw := range map[string]string{"API_ORIGIN": cfg.APIOrigin, "BACKEND_URL": cfg.BackendURL} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			invalid = append(invalid, key)
		}
	}

	if len(invalid) > 0 {
		slices.Sort(invalid)
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
