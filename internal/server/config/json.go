package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/forumkit/forumkit/internal/flagx"
	"github.com/forumkit/forumkit/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so JSON can specify them either as strings like "1h" or as
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	SessionTokenLifetime  timex.Duration `json:"session_token_lifetime"`
	RememberTokenLifetime timex.Duration `json:"remember_token_lifetime"`
	CSRFTokenLifetime     timex.Duration `json:"csrf_token_lifetime"`
	TokenGCInterval       timex.Duration `json:"token_gc_interval"`
	ForumTitle            string         `json:"forum_title"`
	ForumDescription      string         `json:"forum_description"`
	BasePath              string         `json:"base_path"`
	Debug                 *bool          `json:"debug"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.SessionTokenLifetime.Duration != 0 {
		cfg.SessionTokenLifetime = time.Duration(jc.SessionTokenLifetime.Duration)
	}
	if jc.RememberTokenLifetime.Duration != 0 {
		cfg.RememberTokenLifetime = time.Duration(jc.RememberTokenLifetime.Duration)
	}
	if jc.CSRFTokenLifetime.Duration != 0 {
		cfg.CSRFTokenLifetime = time.Duration(jc.CSRFTokenLifetime.Duration)
	}
	if jc.TokenGCInterval.Duration != 0 {
		cfg.TokenGCInterval = time.Duration(jc.TokenGCInterval.Duration)
	}
	if jc.ForumTitle != "" {
		cfg.ForumTitle = jc.ForumTitle
	}
	if jc.ForumDescription != "" {
		cfg.ForumDescription = jc.ForumDescription
	}
	if jc.BasePath != "" {
		cfg.BasePath = jc.BasePath
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	if len(jc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = jc.AllowedOrigins
	}
	if jc.S3RootUser != "" {
		cfg.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		cfg.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
