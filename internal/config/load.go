package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the ENROLL_
// prefix (dots in keys map to underscores, e.g. ENROLL_DATABASE_URL for
// database.url). Missing required values fail loading; the process is
// expected to treat that as fatal.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ENROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every known key with viper so that AutomaticEnv
// picks up overrides during Unmarshal. Keys without a sensible default are
// registered empty and caught by validation.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.public_base_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.acquire_timeout", "10s")
	v.SetDefault("database.max_conn_idle_time", "30s")
	v.SetDefault("database.timezone", "America/Lima")
	v.SetDefault("database.application_name", "we-edu-app")
	v.SetDefault("database.statement_timeout", "0s")
	v.SetDefault("database.run_migrations", false)
	v.SetDefault("database.migrations_dir", "migrations")

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.path_style", false)
	v.SetDefault("storage.upload_url_ttl", "5m")
	v.SetDefault("storage.download_url_ttl", "10m")

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.sheet_name", "Inscripciones")
	v.SetDefault("sheets.credentials_file", "")
}
