package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

type jsonRenderer struct{}

func (jsonRenderer) Name() string { return FormatJSON }

func (jsonRenderer) Render(w io.Writer, a *domain.Artifact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Name() string { return FormatYAML }

func (yamlRenderer) Render(w io.Writer, a *domain.Artifact) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return nil
}
