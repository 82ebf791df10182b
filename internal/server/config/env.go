package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays Config with values from environment variables. Combined
// with godotenv in LoadConfig, this also picks up a local .env file.
//
// Recognized variables:
//
//	FORUMKIT_ENDPOINT_ADDR           bind address
//	FORUMKIT_DATABASE_DSN            PostgreSQL DSN
//	FORUMKIT_SECRET_KEY              HMAC secret for anti-forgery tokens
//	FORUMKIT_SESSION_TOKEN_LIFETIME  Go duration string
//	FORUMKIT_REMEMBER_TOKEN_LIFETIME Go duration string
//	FORUMKIT_CSRF_TOKEN_LIFETIME     Go duration string
//	FORUMKIT_TOKEN_GC_INTERVAL       Go duration string
//	FORUMKIT_FORUM_TITLE             instance title
//	FORUMKIT_FORUM_DESCRIPTION       instance description
//	FORUMKIT_BASE_PATH               URL base path, e.g. "/forum"
//	FORUMKIT_DEBUG                   "true" enables debug mode
//	FORUMKIT_ALLOWED_ORIGINS         comma-separated CORS origins
//	FORUMKIT_S3_ROOT_USER            object storage access key
//	FORUMKIT_S3_ROOT_PASSWORD        object storage secret key
//	FORUMKIT_S3_BUCKET               avatar bucket name
//	FORUMKIT_S3_REGION               object storage region
//	FORUMKIT_S3_BASE_ENDPOINT        object storage endpoint URL
func parseEnv(cfg *Config) {
	if v := os.Getenv("FORUMKIT_ENDPOINT_ADDR"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("FORUMKIT_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("FORUMKIT_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("FORUMKIT_SESSION_TOKEN_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTokenLifetime = d
		}
	}
	if v := os.Getenv("FORUMKIT_REMEMBER_TOKEN_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RememberTokenLifetime = d
		}
	}
	if v := os.Getenv("FORUMKIT_CSRF_TOKEN_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CSRFTokenLifetime = d
		}
	}
	if v := os.Getenv("FORUMKIT_TOKEN_GC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenGCInterval = d
		}
	}
	if v := os.Getenv("FORUMKIT_FORUM_TITLE"); v != "" {
		cfg.ForumTitle = v
	}
	if v := os.Getenv("FORUMKIT_FORUM_DESCRIPTION"); v != "" {
		cfg.ForumDescription = v
	}
	if v := os.Getenv("FORUMKIT_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("FORUMKIT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("FORUMKIT_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("FORUMKIT_S3_ROOT_USER"); v != "" {
		cfg.S3RootUser = v
	}
	if v := os.Getenv("FORUMKIT_S3_ROOT_PASSWORD"); v != "" {
		cfg.S3RootPassword = v
	}
	if v := os.Getenv("FORUMKIT_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("FORUMKIT_S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("FORUMKIT_S3_BASE_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
}
