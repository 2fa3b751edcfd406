package model

import (
	"html/template"
	"time"
)

// ContentItem represents a single markdown file from the content directory
// (e.g., blog post, project page, standalone page).
type ContentItem struct {
	Title       string
	Date        time.Time
	Type        string
	SourcePath  string
	Permalink   string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
	Summary     string
	Layout      string
}

// Profile is the site owner's personal information.
type Profile struct {
	Name         string        `yaml:"name"`
	Role         string        `yaml:"role"`
	Description  string        `yaml:"description"`
	Location     string        `yaml:"location"`
	Email        string        `yaml:"email"`
	Website      string        `yaml:"website"`
	GitHub       string        `yaml:"github"`
	LinkedIn     string        `yaml:"linkedin"`
	ProfileImage string        `yaml:"profileImage"`
	Resume       string        `yaml:"resume"`
	Bio          string        `yaml:"bio"`
	BioHTML      template.HTML `yaml:"-"`
}

// Skill is one entry of a skill category.
type Skill struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
	Years int    `yaml:"years"`
}

// SkillCategory groups related skills, e.g. "languages" or "databases".
type SkillCategory struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"displayName"`
	Skills      []Skill `yaml:"skills"`
}

// Label returns the display name, falling back to the category name.
func (c SkillCategory) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Project is a portfolio project.
type Project struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	Technologies []string
	Highlights   []string
	GitHubURL    string
	LiveURL      string
	Featured     bool
	Status       string
	StartDate    time.Time
	EndDate      time.Time
	ContentHTML  template.HTML
	Permalink    string
	SourcePath   string
}

// Post is a blog post.
type Post struct {
	ID          string
	Slug        string
	Title       string
	Excerpt     string
	Date        time.Time
	ReadTime    string
	Category    string
	Published   bool
	ContentHTML template.HTML
	Permalink   string
	SourcePath  string
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Config          map[string]interface{}
	Profile         Profile
	SkillCategories []SkillCategory
	ContentItems    []*ContentItem
	Pages           []*ContentItem
	Posts           []*Post
	Projects        []*Project
	ContentByType   map[string][]*ContentItem
}
