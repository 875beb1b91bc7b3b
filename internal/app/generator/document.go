package generator

import (
	"bytes"
	"fmt"
	"os"

	"github.com/heartmarshall/amenitygen/internal/compiler"
	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/wikitable"
)

// Document is a category table read from disk and compiled.
type Document struct {
	Source   string
	Raw      []byte
	Stats    wikitable.Stats
	Artifact *domain.Artifact
	Report   compiler.Report
}

// LoadDocument reads the table at path and compiles it. A document without a
// category table yields an error wrapping domain.ErrStructural.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(path, raw)
}

// ParseDocument compiles an in-memory table. source is only recorded.
func ParseDocument(source string, raw []byte) (*Document, error) {
	entries, stats, err := wikitable.ExtractEntries(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", source, err)
	}

	art, report := compiler.Compile(entries)
	return &Document{
		Source:   source,
		Raw:      raw,
		Stats:    stats,
		Artifact: art,
		Report:   report,
	}, nil
}
