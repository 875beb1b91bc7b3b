package render

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/ident"
)

// GeneratedMarker is the first line of every Go file this package writes.
const GeneratedMarker = "Code generated by amenitygen. DO NOT EDIT."

var goTemplate = parseTemplate("amenity_category.go.tmpl", template.FuncMap{
	"goConst":  goConst,
	"goString": strconv.Quote,
	"goTerm":   goTerm,
})

type goRenderer struct {
	opts Options
}

func (r *goRenderer) Name() string { return FormatGo }

func (r *goRenderer) Render(w io.Writer, a *domain.Artifact) error {
	header := []string{GeneratedMarker}
	if r.opts.Header != DefaultHeader {
		header = append(header, commentLines(r.opts.Header)...)
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, newView(a, r.opts, header)); err != nil {
		return fmt.Errorf("render go: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("render go: format: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("render go: write: %w", err)
	}
	return nil
}

// goConst maps a symbol such as "kFireHydrant" to "CategoryFireHydrant".
func goConst(enumName string) string {
	return "Category" + strings.TrimPrefix(enumName, ident.SymbolPrefix)
}

func goTerm(term domain.Term, fields []domain.Field) string {
	parts := make([]string, len(term))
	for i, p := range term {
		member := "t." + fields[p.Slot].Ident + "_"
		if p.Op == domain.OpPresent {
			parts[i] = member + ` != ""`
			continue
		}
		parts[i] = member + " == " + strconv.Quote(p.Value)
	}
	return strings.Join(parts, " && ")
}
