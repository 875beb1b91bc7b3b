package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/amenitygen/internal/render"
)

// ErrNoDSN is returned by DatabaseConfig.Validate when no DSN is configured.
var ErrNoDSN = errors.New("database.dsn is required")

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Generate.validate(); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := c.Icons.validate(); err != nil {
		return fmt.Errorf("icons: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must be >= 0 (got %v)", c.CORS.MaxAge)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

func (g *GenerateConfig) validate() error {
	if !slices.Contains(render.Formats(), strings.ToLower(g.Format)) {
		return fmt.Errorf("format must be one of %s (got %q)", strings.Join(render.Formats(), ", "), g.Format)
	}
	if g.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	return nil
}

func (i *IconsConfig) validate() error {
	if i.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", i.Concurrency)
	}
	if i.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", i.Timeout)
	}
	if i.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	return nil
}

// Validate checks the settings needed to open a connection pool.
func (d DatabaseConfig) Validate() error {
	if d.DSN == "" {
		return ErrNoDSN
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("database.min_conns must be in 0..%d (got %d)", d.MaxConns, d.MinConns)
	}
	return nil
}
