package generator

import (
	"github.com/heartmarshall/amenitygen/internal/config"
	"github.com/heartmarshall/amenitygen/internal/render"
)

// Config holds pipeline settings for one run.
type Config struct {
	DocumentPath string
	Format       string
	OutputPath   string
	Render       render.Options
	IconsDir     string
	BaseURL      string
	Overwrite    bool
	DryRun       bool
}

// NewConfig derives pipeline settings from the application config.
func NewConfig(cfg *config.Config, documentPath string) Config {
	return Config{
		DocumentPath: documentPath,
		Format:       cfg.Generate.Format,
		OutputPath:   cfg.Generate.Output,
		Render: render.Options{
			Namespace: cfg.Generate.Namespace,
			Package:   cfg.Generate.Package,
			Header:    cfg.Generate.Header,
		},
		IconsDir:  cfg.Icons.Output,
		BaseURL:   cfg.Icons.BaseURL,
		Overwrite: cfg.Icons.Overwrite,
	}
}
