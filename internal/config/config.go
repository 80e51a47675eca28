package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Sheets   SheetsConfig   `mapstructure:"sheets"   validate:"required"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// PublicBaseURL is the externally reachable base URL of this service.
	// It is used to compose the /file/view links written into the sheet.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required,url"`

	// AllowedOrigins is the CORS allow-list. An empty list denies all
	// cross-origin browser requests.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// Pool sizing and lease behavior. AcquireTimeout bounds how long a
	// request waits for a free connection before failing.
	MaxConns        int32         `mapstructure:"max_conns"          validate:"gte=1"`
	MinConns        int32         `mapstructure:"min_conns"          validate:"gte=0"`
	AcquireTimeout  time.Duration `mapstructure:"acquire_timeout"    validate:"gt=0"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time" validate:"gt=0"`

	// Session settings applied once per physical connection.
	Timezone        string        `mapstructure:"timezone"`
	ApplicationName string        `mapstructure:"application_name"`
	// StatementTimeout, when positive, sets a connection-global
	// statement_timeout. Per-call timeouts are handled separately with
	// SET LOCAL inside the calling transaction.
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`

	// RunMigrations applies the goose migrations under MigrationsDir at
	// startup before the server accepts traffic.
	RunMigrations bool   `mapstructure:"run_migrations"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// StorageConfig contains the object-store settings for identity-document
// uploads. The bucket is assumed private; access happens exclusively
// through short-lived signed URLs.
type StorageConfig struct {
	Bucket   string `mapstructure:"bucket" validate:"required"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	// PathStyle enables path-style addressing for S3-compatible stores
	// such as MinIO.
	PathStyle bool `mapstructure:"path_style"`

	UploadURLTTL   time.Duration `mapstructure:"upload_url_ttl"   validate:"gt=0"`
	DownloadURLTTL time.Duration `mapstructure:"download_url_ttl" validate:"gt=0"`
}

// SheetsConfig contains the settings for the spreadsheet the enrollment
// rows are written to.
type SheetsConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id" validate:"required"`
	SheetName     string `mapstructure:"sheet_name"     validate:"required"`
	// CredentialsFile points at a service-account key file. When empty the
	// default application credentials chain is used.
	CredentialsFile string `mapstructure:"credentials_file"`
}
