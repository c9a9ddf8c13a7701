package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	DeepL      DeepLConfig      `yaml:"deepl"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"10000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// StaticDir is the built client directory served at /. Empty disables
	// static serving (API-only deployment).
	StaticDir string `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
	// RateLimitPerMinute applies to the translation endpoints, which proxy
	// a metered external API. 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN runs the
// server without persistence: vocabulary and priority writes become no-ops
// and learned state lives only in memory.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// DeepLConfig holds translation-oracle settings. An empty API key disables
// the oracle; lookups then fall back to the dictionary file and the
// vocabulary store.
type DeepLConfig struct {
	URL        string        `yaml:"url"         env:"DEEPL_URL"         env-default:"https://api-free.deepl.com/v2/translate"`
	APIKey     string        `yaml:"api_key"     env:"DEEPL_KEY"`
	SourceLang string        `yaml:"source_lang" env:"DEEPL_SOURCE_LANG" env-default:"EN"`
	TargetLang string        `yaml:"target_lang" env:"DEEPL_TARGET_LANG" env-default:"DE"`
	Timeout    time.Duration `yaml:"timeout"     env:"DEEPL_TIMEOUT"     env-default:"10s"`
}

// DictionaryConfig holds static dictionary file settings.
type DictionaryConfig struct {
	// Path to the line-oriented "english # german" dictionary file.
	// A missing file is not fatal; the dictionary source is then empty.
	Path string `yaml:"path" env:"DICTIONARY_PATH" env-default:"./VkblDB.txt"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
