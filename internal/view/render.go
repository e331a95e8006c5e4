package view

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Layout wraps a page with request-scoped extras for the HTML layout
type Layout struct {
	*Page
	Flash string
}

// Templates parses the embedded templates. The "step" function renders
// the template named by a step table row.
func Templates() (*template.Template, error) {
	t := template.New("claimwizard")
	t.Funcs(template.FuncMap{
		"step": func(name string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
		"clock": clock,
	})
	return t.ParseFS(templateFS, "templates/*.tmpl")
}

// MustTemplates is Templates that panics on a parse error
func MustTemplates() *template.Template {
	t, err := Templates()
	if err != nil {
		panic(err)
	}
	return t
}

func clock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("3:04 PM")
}
