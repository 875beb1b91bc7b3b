package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

var cppTemplate = parseTemplate("amenity_category.h.tmpl", template.FuncMap{
	"cppString": cppString,
	"cppTerm":   cppTerm,
})

type cppRenderer struct {
	opts Options
}

func (r *cppRenderer) Name() string { return FormatCPP }

func (r *cppRenderer) Render(w io.Writer, a *domain.Artifact) error {
	if err := cppTemplate.Execute(w, newView(a, r.opts, commentLines(r.opts.Header))); err != nil {
		return fmt.Errorf("render cpp: %w", err)
	}
	return nil
}

// cppTerm renders one AND-group, e.g. `amenity_ == "bench"sv && !name_.empty()`.
func cppTerm(term domain.Term, fields []domain.Field) string {
	parts := make([]string, len(term))
	for i, p := range term {
		member := fields[p.Slot].Ident + "_"
		if p.Op == domain.OpPresent {
			parts[i] = "!" + member + ".empty()"
			continue
		}
		parts[i] = member + " == " + cppString(p.Value) + "sv"
	}
	return strings.Join(parts, " && ")
}

// cppString quotes s as a C++ narrow string literal. Control bytes are
// written as three-digit octal escapes; other bytes pass through.
func cppString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
