package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with values from environment variables. Combined
// with godotenv in LoadConfig, this also picks up a local .env file.
//
// Recognized variables:
//
//	FORUMKIT_SERVER_URL      backend origin
//	FORUMKIT_DB_PATH         local cache path
//	FORUMKIT_REQUEST_TIMEOUT per-request timeout (Go duration string)
//	FORUMKIT_DEBUG           "true" enables debug alerts
func parseEnv(cfg *Config) {
	if v := os.Getenv("FORUMKIT_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("FORUMKIT_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("FORUMKIT_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("FORUMKIT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
