// Package web holds the embedded page templates and static assets.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names
const (
	PageHome      = "home"
	PagePortfolio = "portfolio"
	PageProject   = "project"
	PageContact   = "contact"
	PageNotFound  = "not_found"
	PageError     = "error"
)

var pageNames = []string{PageHome, PagePortfolio, PageProject, PageContact, PageNotFound, PageError}

// Renderer turns page data into templ components
type Renderer struct {
	basePath string
	pages    map[string]*template.Template
}

// NewRenderer parses every page against the shared layout. basePath is
// prefixed to every link the templates build.
func NewRenderer(basePath string) (*Renderer, error) {
	r := &Renderer{basePath: basePath, pages: make(map[string]*template.Template, len(pageNames))}

	base, err := template.New("base").Funcs(template.FuncMap{
		"url": r.URL,
	}).ParseFS(templatesFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// URL joins p onto the configured base path
func (r *Renderer) URL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "//") {
		return p
	}
	query := ""
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p, query = p[:i], p[i:]
	}
	joined := path.Join(r.basePath, p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined + query
}

// Page renders a full document for page name
func (r *Renderer) Page(name string, data any) templ.Component {
	return r.block(name, "layout", data)
}

// Fragment renders a single named block of page name
func (r *Renderer) Fragment(name, block string, data any) templ.Component {
	return r.block(name, block, data)
}

func (r *Renderer) block(name, block string, data any) templ.Component {
	page, ok := r.pages[name]
	if !ok {
		return errorComponent(fmt.Errorf("unknown page %q", name))
	}
	t := page.Lookup(block)
	if t == nil {
		return errorComponent(fmt.Errorf("page %q has no block %q", name, block))
	}
	return templ.FromGoHTML(t, data)
}

func errorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, _ io.Writer) error {
		return err
	})
}

// Static serves the embedded assets
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
