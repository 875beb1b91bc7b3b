package config

import "time"

// Config is the root application configuration.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Icons    IconsConfig    `yaml:"icons"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// GenerateConfig holds code generation settings.
type GenerateConfig struct {
	Format    string `yaml:"format"    env:"GENERATE_FORMAT"    env-default:"cpp"`
	Output    string `yaml:"output"    env:"GENERATE_OUTPUT"    env-default:"amenity_category.h"`
	Namespace string `yaml:"namespace" env:"GENERATE_NAMESPACE" env-default:"adr"`
	Package   string `yaml:"package"   env:"GENERATE_PACKAGE"   env-default:"amenity"`
	Header    string `yaml:"header"    env:"GENERATE_HEADER"`
}

// IconsConfig holds icon download settings.
type IconsConfig struct {
	Output      string        `yaml:"output"      env:"ICONS_OUTPUT"      env-default:"icons"`
	BaseURL     string        `yaml:"base_url"    env:"ICONS_BASE_URL"    env-default:"https://wiki.openstreetmap.org"`
	Overwrite   bool          `yaml:"overwrite"   env:"ICONS_OVERWRITE"   env-default:"false"`
	Concurrency int           `yaml:"concurrency" env:"ICONS_CONCURRENCY" env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"     env:"ICONS_TIMEOUT"     env-default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is only needed
// by commands that publish categories.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CORSConfig holds cross-origin settings of the preview server.
type CORSConfig struct {
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	MaxAge         time.Duration `yaml:"max_age"         env:"CORS_MAX_AGE"                           env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
