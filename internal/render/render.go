// Package render writes a compiled domain.Artifact in a target format.
//
// Renderers only read the artifact. The same artifact and options always
// produce byte-identical output.
package render

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

// Supported formats.
const (
	FormatCPP  = "cpp"
	FormatGo   = "go"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Defaults applied by New.
const (
	DefaultNamespace = "adr"
	DefaultPackage   = "amenity"
	DefaultHeader    = "WARNING: This file is auto-generated. Do not edit manually."
)

// ErrUnknownFormat is returned by New for formats it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes an artifact to w.
type Renderer interface {
	Name() string
	Render(w io.Writer, a *domain.Artifact) error
}

// Options tune the source renderers. Zero values fall back to defaults.
type Options struct {
	// Namespace wraps the C++ output.
	Namespace string
	// Package names the Go output package.
	Package string
	// Header is the banner comment at the top of source output.
	Header string
}

var cppNamespaceRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	return o
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	f := []string{FormatCPP, FormatGo, FormatJSON, FormatYAML}
	slices.Sort(f)
	return f
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(format) {
	case FormatCPP:
		if !cppNamespaceRe.MatchString(opts.Namespace) {
			return nil, fmt.Errorf("render: invalid C++ namespace %q", opts.Namespace)
		}
		return &cppRenderer{opts: opts}, nil
	case FormatGo:
		if !token.IsIdentifier(opts.Package) {
			return nil, fmt.Errorf("render: invalid Go package name %q", opts.Package)
		}
		return &goRenderer{opts: opts}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("render: %q (want one of %s): %w", format, strings.Join(Formats(), ", "), ErrUnknownFormat)
	}
}

// commentLines splits a banner into single-line comment bodies.
func commentLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// oneLine makes s safe for a line comment.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
