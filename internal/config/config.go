// Package config provides centralized configuration management for the
// pipeline. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all pipeline configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database  DatabaseConfig
	Source    SourceConfig
	Load      LoadConfig
	API       APIConfig
	Output    OutputConfig
	Report    ReportConfig
	Transform TransformConfig
	Logging   LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// SourceConfig holds input-file settings.
type SourceConfig struct {
	// CSVPath is the path to the source CSV file (default: netflix_titles.csv)
	CSVPath string `env:"SOURCE_CSV_PATH" default:"netflix_titles.csv"`
}

// LoadConfig holds destination-table settings.
type LoadConfig struct {
	// Table is the destination table name (default: netflix_titles)
	Table string `env:"TARGET_TABLE" default:"netflix_titles"`

	// Mode controls behavior when the table exists: replace, append or fail
	Mode string `env:"LOAD_MODE" default:"replace"`

	// BatchSize is the number of rows per insert batch (default: 1000)
	BatchSize int `env:"LOAD_BATCH_SIZE" default:"1000"`
}

// APIConfig holds settings for the optional network extraction source.
// When URL is set the pipeline extracts from the API instead of the CSV.
type APIConfig struct {
	URL string `env:"API_URL"`

	// Timeout is the per-request timeout (default: 30s)
	Timeout time.Duration `env:"API_TIMEOUT" default:"30s"`

	// RetryCount is the number of attempts before giving up (default: 3)
	RetryCount int `env:"API_RETRY_COUNT" default:"3"`
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	// Dir is the directory for reports and charts (default: output)
	Dir string `env:"OUTPUT_DIR" default:"output"`
}

// ReportConfig holds reporting settings.
type ReportConfig struct {
	// Required makes reporting failures fail the whole run (default: false)
	Required bool `env:"REPORT_REQUIRED" default:"false"`
}

// TransformConfig holds transformation settings.
type TransformConfig struct {
	// ReferenceYear bounds release-year validation; 0 means the current
	// wall-clock year. Set a fixed year for reproducible output.
	ReferenceYear int `env:"REFERENCE_YEAR" default:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
