// Package config loads runtime configuration from the environment and the
// embedded static option lists.
package config

import (
	"errors"
	"os"
	"strconv"
)

// ErrMissingToken is returned when the required bot token is absent.
// The process must not start serving without it.
var ErrMissingToken = errors.New("BOT_TOKEN env missing")

// Config holds process-level settings loaded from the environment
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required.
	BotToken string

	// HTTPPort is where the health server listens
	HTTPPort string

	// PollTimeout is the long-poll timeout in seconds for getUpdates
	PollTimeout int

	// Debug enables verbose Bot API logging
	Debug bool
}

// Load reads configuration from environment variables.
// A missing BOT_TOKEN is a fatal startup condition.
func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, ErrMissingToken
	}

	pollTimeout := 30
	if v := os.Getenv("POLL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pollTimeout = n
		}
	}

	return &Config{
		BotToken:    token,
		HTTPPort:    getEnvOrDefault("HTTP_PORT", "8080"),
		PollTimeout: pollTimeout,
		Debug:       os.Getenv("BOT_DEBUG") == "true",
	}, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
