package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	publicLayout = "templates/layout.html"
	partials     = "templates/partials.html"
	adminLayout  = "templates/admin_layout.html"
)

// Templates holds one template set per page, each parsed together with its
// layout. Pages whose name starts with "admin_" use the admin layout, the
// rest share the public layout and partials.
type Templates struct {
	pages map[string]*template.Template
}

func NewTemplates() (*Templates, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == publicLayout || file == partials || file == adminLayout {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")

		patterns := []string{publicLayout, partials, file}
		if strings.HasPrefix(name, "admin_") {
			patterns = []string{adminLayout, file}
		}

		tmpl, err := template.New(path.Base(patterns[0])).Funcs(funcs).ParseFS(templatesFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Templates{pages: pages}, nil
}

// MustTemplates panics when the embedded templates do not parse.
func MustTemplates() *Templates {
	t, err := NewTemplates()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Templates) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// RenderHTML executes the page into a buffer first so a template error never
// leaves a half-written response behind.
func (t *Templates) RenderHTML(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := t.Render(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"datetime": func(t interface{}) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("2006-01-02 15:04")
		case *time.Time:
			if v == nil {
				return ""
			}
			return v.Format("2006-01-02 15:04")
		}
		return ""
	},
	"year": func() int {
		return time.Now().Year()
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}
