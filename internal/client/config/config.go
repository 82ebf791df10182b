// Package config handles configuration for the client component, including
// defaults, .env overlay, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the forumkit CLI client.
//
// Fields:
//   - ServerBaseURL: origin of the backend API (scheme://host:port).
//   - DatabasePath: path/DSN of the local SQLite cache.
//   - RequestTimeout: per-request timeout applied by the HTTP client.
//   - Debug: enables technical detail on request-failure alerts.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "forumkit.db"
	c.RequestTimeout = 15 * time.Second
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a .env file (if present), a JSON file (if given via -c/-config), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
