// Package theme loads page templates, either one of the embedded themes or a
// user supplied layouts directory, and renders pages from PageData.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed all:themes
var embedded embed.FS

const (
	baseLayout  = "base.html"
	partialsDir = "partials"
	staticDir   = "static"
	metaFile    = "theme.yaml"
)

// Page template names every theme must provide.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageProjects = "projects"
	PageProject  = "project"
	PageBlog     = "blog"
	PagePost     = "post"
	PageContact  = "contact"
	PagePage     = "page"
)

var requiredPages = []string{PageHome, PageAbout, PageProjects, PageProject, PageBlog, PagePost, PageContact, PagePage}

// ErrUnknownTheme is returned by Load for a name that is not embedded.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a parsed set of page templates.
type Theme struct {
	Name string
	// FacetLimit is the number of facet links shown before the rest are
	// folded into a "+N more" marker. 0 shows all.
	FacetLimit int

	pages  map[string]*template.Template
	static fs.FS
}

type meta struct {
	FacetLimit int `yaml:"facetLimit"`
}

// Names lists the embedded themes.
func Names() []string {
	entries, err := embedded.ReadDir("themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Load parses the embedded theme called name.
func Load(name string) (*Theme, error) {
	sub, err := fs.Sub(embedded, path.Join("themes", name))
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	if _, err := fs.Stat(sub, baseLayout); err != nil {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownTheme, name, strings.Join(Names(), ", "))
	}
	return parse(name, sub)
}

// LoadDir parses a theme from a layouts directory on disk.
func LoadDir(dir string) (*Theme, error) {
	return parse(dir, os.DirFS(dir))
}

// parse loads base.html and every partial first, then clones that set once
// per page so each page can define its own blocks.
func parse(name string, fsys fs.FS) (*Theme, error) {
	t := &Theme{Name: name, pages: make(map[string]*template.Template)}

	if raw, err := fs.ReadFile(fsys, metaFile); err == nil {
		var m meta
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s of theme %s: %w", metaFile, name, err)
		}
		t.FacetLimit = m.FacetLimit
	}

	base := template.New(baseLayout).Funcs(funcs)
	base, err := base.ParseFS(fsys, baseLayout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s of theme %s: %w", baseLayout, name, err)
	}
	partials, err := fs.Glob(fsys, path.Join(partialsDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list partials of theme %s: %w", name, err)
	}
	if len(partials) > 0 {
		if base, err = base.ParseFS(fsys, partials...); err != nil {
			return nil, fmt.Errorf("failed to parse partials of theme %s: %w", name, err)
		}
	}

	pageFiles, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages of theme %s: %w", name, err)
	}
	for _, file := range pageFiles {
		if file == baseLayout {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("failed to parse page %s of theme %s: %w", file, name, err)
		}
		t.pages[strings.TrimSuffix(file, ".html")] = clone
	}

	for _, page := range requiredPages {
		if _, ok := t.pages[page]; !ok {
			return nil, fmt.Errorf("theme %s is missing page template %s.html", name, page)
		}
	}

	if sub, err := fs.Sub(fsys, staticDir); err == nil {
		if _, err := fs.Stat(fsys, staticDir); err == nil {
			t.static = sub
		}
	}
	return t, nil
}

// Has reports whether the theme provides page.
func (t *Theme) Has(page string) bool {
	_, ok := t.pages[page]
	return ok
}

// Static returns the theme's static assets, or nil when it has none.
func (t *Theme) Static() fs.FS {
	return t.static
}

// Render executes page with data into w.
func (t *Theme) Render(w io.Writer, page string, data *PageData) error {
	tpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("theme %s has no page template %s", t.Name, page)
	}
	if err := tpl.ExecuteTemplate(w, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s' of theme %s: %w", page, t.Name, err)
	}
	return nil
}
