package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/pkg/jwtx"
)

type Config struct {
	AccessSecret     string        // Required: HMAC secret for access tokens
	AccessExpiresIn  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshSecret    string        // Required: HMAC secret for refresh tokens
	RefreshExpiresIn time.Duration // Optional: refresh token lifetime (default: 7d)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./taskflow.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. Secrets are not
// validated here; building the token codec fails fast at startup when one is
// missing.
func LoadConfig() Config {
	return Config{
		AccessSecret:        os.Getenv("JWT_ACCESS_SECRET"),
		AccessExpiresIn:     getEnvExpiryOrDefault("JWT_ACCESS_EXPIRES_IN", jwtx.DefaultAccessTTL),
		RefreshSecret:       os.Getenv("JWT_REFRESH_SECRET"),
		RefreshExpiresIn:    getEnvExpiryOrDefault("JWT_REFRESH_EXPIRES_IN", jwtx.DefaultRefreshTTL),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "taskflow.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvExpiryOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvExpiryOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, ok := parseExpiry(value); ok {
		return d
	}

	return defaultValue
}

// parseExpiry parses human-readable expiry strings. On top of Go durations
// ("15m", "1h30m") it accepts a whole-day shorthand ("7d"), which
// time.ParseDuration does not.
func parseExpiry(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour, true
		}
		return 0, false
	}

	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d, true
	}

	return 0, false
}
