package model

import "github.com/Bitlatte/folio/internal/facet"

// Project statuses recognized by the themes.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
	StatusPlanning   = "planning"
	StatusArchived   = "archived"
)

// ProjectTechnologies facets projects by their technology tags.
var ProjectTechnologies = facet.Sequence(func(p *Project) []string {
	if p == nil {
		return nil
	}
	return p.Technologies
})

// ProjectStatus facets projects by status. Projects without a status carry
// no status facet.
var ProjectStatus = facet.Scalar(func(p *Project) (string, bool) {
	if p == nil || p.Status == "" {
		return "", false
	}
	return p.Status, true
})

// PostCategory facets posts by category. An empty category is absent.
var PostCategory = facet.Scalar(func(p *Post) (string, bool) {
	if p == nil || p.Category == "" {
		return "", false
	}
	return p.Category, true
})
