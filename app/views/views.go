// Package views holds the embedded HTML templates and static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists every renderable page. Each is parsed together with the layout.
var Pages = []string{
	"post_list",
	"post_detail",
	"post_form",
	"post_confirm_delete",
	"post_draft_list",
	"comment_form",
	"about",
	"login",
	"404",
}

// Load parses every page with the given functions. funcs must provide "url";
// Funcs supplies the rest.
func Load(funcs template.FuncMap) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(Pages))
	for _, page := range Pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// Funcs returns the formatting helpers, rendering times in loc.
func Funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"date": func(v interface{}) string {
			var t time.Time
			switch tv := v.(type) {
			case time.Time:
				t = tv
			case *time.Time:
				if tv == nil {
					return ""
				}
				t = *tv
			default:
				return ""
			}
			return t.In(loc).Format("January 2, 2006, 3:04 PM")
		},
	}
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
