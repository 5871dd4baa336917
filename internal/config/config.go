package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Ingest     IngestConfig     `yaml:"ingest"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ClassifierConfig holds settings for the LLM note classifier.
// The API key is resolved in order: api_key, api_key_file, ANTHROPIC_API_KEY.
type ClassifierConfig struct {
	APIKey      string        `yaml:"api_key"      env:"CLASSIFIER_API_KEY"`
	APIKeyFile  string        `yaml:"api_key_file" env:"CLASSIFIER_API_KEY_FILE"`
	Model       string        `yaml:"model"        env:"CLASSIFIER_MODEL"        env-default:"claude-sonnet-4-5"`
	MaxTokens   int64         `yaml:"max_tokens"   env:"CLASSIFIER_MAX_TOKENS"   env-default:"4096"`
	MaxAttempts int           `yaml:"max_attempts" env:"CLASSIFIER_MAX_ATTEMPTS" env-default:"3"`
	RetryDelay  time.Duration `yaml:"retry_delay"  env:"CLASSIFIER_RETRY_DELAY"  env-default:"5s"`
}

// IngestConfig holds batch-ingestion settings.
type IngestConfig struct {
	// MaxConcurrent caps the number of files processed simultaneously,
	// which also caps simultaneous classifier calls.
	MaxConcurrent int `yaml:"max_concurrent" env:"INGEST_MAX_CONCURRENT" env-default:"4"`
	// RetryCooldown is the single batch-level delay before re-running
	// rate-limited files. It is deliberately much longer than the
	// classifier's per-attempt retry delay.
	RetryCooldown time.Duration `yaml:"retry_cooldown" env:"INGEST_RETRY_COOLDOWN" env-default:"45s"`
	// PreviewLength is the maximum length, in runes, of the source-note
	// text preview.
	PreviewLength int `yaml:"preview_length" env:"INGEST_PREVIEW_LENGTH" env-default:"200"`
}
