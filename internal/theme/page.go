package theme

import (
	"html/template"

	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
)

// Placeholder profile text shown when the data file leaves a field empty.
const (
	DefaultName        = "Your Name"
	DefaultRole        = "Your Professional Role"
	DefaultDescription = "Your professional description goes here."
)

// PageData is the value every page template executes with.
type PageData struct {
	SiteTitle string
	PageTitle string
	BaseURL   string
	// Section names the active navigation entry, e.g. "projects".
	Section string
	Content template.HTML
	Params  map[string]interface{}

	Site    *model.SiteData
	Profile model.Profile

	// Projects is the project list after applying Selection; Featured and
	// Regular split it for themes that show featured work separately.
	Projects []*model.Project
	Featured []*model.Project
	Regular  []*model.Project
	// Posts is the post list after applying Selection.
	Posts []*model.Post

	Project *model.Project
	Post    *model.Post
	Item    *model.ContentItem

	// TagHrefs maps each technology of Project to its facet page.
	TagHrefs map[string]string
	// CategoryHref links Post's category facet page.
	CategoryHref string

	// Filters holds one facet navigation per facet the page offers.
	Filters   []Nav
	Selection facet.Selection
}

// NewPageData fills the site wide fields of a page.
func NewPageData(site *model.SiteData, siteTitle, baseURL, section, pageTitle string) *PageData {
	return &PageData{
		SiteTitle: siteTitle,
		PageTitle: pageTitle,
		BaseURL:   baseURL,
		Section:   section,
		Site:      site,
		Profile:   WithDefaults(site.Profile),
		Params:    map[string]interface{}{},
	}
}

// WithProjects sets the (already filtered) project list and its featured
// split.
func (d *PageData) WithProjects(projects []*model.Project) *PageData {
	d.Projects = projects
	d.Featured = []*model.Project{}
	d.Regular = []*model.Project{}
	for _, p := range projects {
		if p.Featured {
			d.Featured = append(d.Featured, p)
		} else {
			d.Regular = append(d.Regular, p)
		}
	}
	return d
}

// Title is the document title.
func (d *PageData) Title() string {
	switch {
	case d.PageTitle == "":
		return d.SiteTitle
	case d.SiteTitle == "":
		return d.PageTitle
	}
	return d.PageTitle + " | " + d.SiteTitle
}

// Filtered reports whether the page shows a concrete facet selection.
func (d *PageData) Filtered() bool {
	return !d.Selection.IsAll()
}

// WithDefaults fills empty identity fields of p with placeholder text.
func WithDefaults(p model.Profile) model.Profile {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Role == "" {
		p.Role = DefaultRole
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}
	return p
}
