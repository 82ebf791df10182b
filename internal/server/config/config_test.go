package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 1*time.Hour, cfg.SessionTokenLifetime)
	assert.Equal(t, 5*365*24*time.Hour, cfg.RememberTokenLifetime)
	assert.Equal(t, 6*time.Hour, cfg.CSRFTokenLifetime)
	assert.Equal(t, "forumkit", cfg.ForumTitle)
	assert.False(t, cfg.Debug)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-a", ":9090", "-k", "flagsecret", "-p", "/forum"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "flagsecret", cfg.SecretKey)
	assert.Equal(t, "/forum", cfg.BasePath)
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":          ":7000",
		"session_token_lifetime": "2h",
		"allowed_origins":        []string{"http://a", "http://b"},
		"debug":                  true,
	})

	t.Run("loads from file given via flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":7000", cfg.EndpointAddr)
		assert.Equal(t, 2*time.Hour, cfg.SessionTokenLifetime)
		assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
		assert.True(t, cfg.Debug)
		// untouched fields keep defaults
		assert.Equal(t, "forumkit", cfg.ForumTitle)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":8080", cfg.EndpointAddr)
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("FORUMKIT_ENDPOINT_ADDR", ":6060")
	t.Setenv("FORUMKIT_REMEMBER_TOKEN_LIFETIME", "720h")
	t.Setenv("FORUMKIT_ALLOWED_ORIGINS", "http://x,http://y")
	t.Setenv("FORUMKIT_DEBUG", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, 720*time.Hour, cfg.RememberTokenLifetime)
	assert.Equal(t, []string{"http://x", "http://y"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Debug)
}
