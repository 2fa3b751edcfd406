package site

import (
	"context"

	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
	"github.com/Bitlatte/folio/internal/theme"
)

// facetPages describes one facet dimension of a list page: the summary of the
// collection and where each selection's page lives.
type facetPages struct {
	title   string
	summary facet.Summary
	root    string // permalink of the All selection
	prefix  string // permalink prefix of concrete selections
	slugs   map[string]string
}

func newFacetPages[T any](title string, items []T, ex facet.Extractor[T], order facet.Order, root, prefix string) facetPages {
	summary := facet.Derive(items, ex, facet.WithOrder(order))
	return facetPages{
		title:   title,
		summary: summary,
		root:    root,
		prefix:  prefix,
		slugs:   model.UniqueSlugs(summary.Values()),
	}
}

// href is the permalink of the page showing sel.
func (f facetPages) href(sel facet.Selection) string {
	if sel.IsAll() {
		return f.root
	}
	return f.prefix + f.slugs[sel.Value()] + "/"
}

// selections returns every concrete selection in summary order.
func (f facetPages) selections() []facet.Selection {
	out := make([]facet.Selection, 0, len(f.summary.Entries))
	for _, v := range f.summary.Values() {
		out = append(out, facet.Value(v))
	}
	return out
}

func (f facetPages) nav(sel facet.Selection, limit int) theme.Nav {
	return theme.NewNav(f.title, f.summary, sel, limit, f.href)
}

// renderProjects writes the project index, one page per technology and per
// status, and one page per project.
func (bd *build) renderProjects(ctx context.Context) error {
	projects := bd.site.Projects
	tech := newFacetPages("Technologies", projects, model.ProjectTechnologies, bd.order, "/projects/", "/projects/tech/")
	status := newFacetPages("Status", projects, model.ProjectStatus, bd.order, "/projects/", "/projects/status/")

	list := func(permalink string, ex facet.Extractor[*model.Project], techSel, statusSel facet.Selection) error {
		sel := techSel
		if sel.IsAll() {
			sel = statusSel
		}
		data := bd.page(theme.PageProjects, "Projects")
		data.WithProjects(facet.Filter(projects, ex, sel))
		data.Selection = sel
		data.Filters = []theme.Nav{tech.nav(techSel, bd.limit)}
		if len(status.summary.Entries) > 0 {
			data.Filters = append(data.Filters, status.nav(statusSel, bd.limit))
		}
		if len(data.Projects) == 0 {
			bd.logger.Debug("facet selection is empty", "selection", sel.String(), "path", permalink)
		}
		return bd.write(ctx, permalink, theme.PageProjects, data)
	}

	if err := list(tech.root, model.ProjectTechnologies, facet.All, facet.All); err != nil {
		return err
	}
	for _, sel := range tech.selections() {
		if err := list(tech.href(sel), model.ProjectTechnologies, sel, facet.All); err != nil {
			return err
		}
	}
	for _, sel := range status.selections() {
		if err := list(status.href(sel), model.ProjectStatus, facet.All, sel); err != nil {
			return err
		}
	}

	for _, p := range projects {
		data := bd.page(theme.PageProjects, p.Title)
		data.Project = p
		data.TagHrefs = make(map[string]string, len(p.Technologies))
		for _, t := range p.Technologies {
			data.TagHrefs[t] = tech.href(facet.Value(t))
		}
		if err := bd.write(ctx, p.Permalink, theme.PageProject, data); err != nil {
			return err
		}
	}
	return nil
}

// renderBlog writes the blog index, one page per category and one page per
// post.
func (bd *build) renderBlog(ctx context.Context) error {
	posts := bd.site.Posts
	categories := newFacetPages("Categories", posts, model.PostCategory, bd.order, "/blog/", "/blog/category/")

	list := func(permalink string, sel facet.Selection) error {
		data := bd.page(theme.PageBlog, "Blog")
		data.Posts = facet.Filter(posts, model.PostCategory, sel)
		data.Selection = sel
		data.Filters = []theme.Nav{categories.nav(sel, bd.limit)}
		return bd.write(ctx, permalink, theme.PageBlog, data)
	}

	if err := list(categories.root, facet.All); err != nil {
		return err
	}
	for _, sel := range categories.selections() {
		if err := list(categories.href(sel), sel); err != nil {
			return err
		}
	}

	for _, p := range posts {
		data := bd.page(theme.PageBlog, p.Title)
		data.Post = p
		if v, ok := extractOne(model.PostCategory, p); ok {
			data.CategoryHref = categories.href(facet.Value(v))
		}
		if err := bd.write(ctx, p.Permalink, theme.PagePost, data); err != nil {
			return err
		}
	}
	return nil
}

func extractOne[T any](ex facet.Extractor[T], item T) (string, bool) {
	vals := ex.Values(item)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
