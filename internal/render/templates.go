package render

import (
	"embed"
	"text/template"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// view is the data every source template receives.
type view struct {
	Header     []string
	Namespace  string
	Package    string
	None       string
	Categories []domain.Category
	Fields     []domain.Field
	Conditions []domain.Condition
}

func newView(a *domain.Artifact, opts Options, header []string) view {
	return view{
		Header:     header,
		Namespace:  opts.Namespace,
		Package:    opts.Package,
		None:       domain.NoneEnumName,
		Categories: a.Categories,
		Fields:     a.Fields,
		Conditions: a.Conditions,
	}
}

func parseTemplate(name string, funcs template.FuncMap) *template.Template {
	base := template.FuncMap{
		"last":    func(i int, s []domain.Category) bool { return i == len(s)-1 },
		"comment": oneLine,
		"member":  func(f domain.Field) string { return f.Ident + "_" },
	}
	for k, v := range funcs {
		base[k] = v
	}
	return template.Must(template.New(name).Funcs(base).ParseFS(templateFS, "templates/"+name))
}
