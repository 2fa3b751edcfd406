// Package content loads the profile data file and the markdown content tree
// into a model.SiteData.
package content

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/model"
)

// Content types derived from the first directory below the content root.
const (
	TypePage    = "page"
	TypeProject = "projects"
	TypePost    = "blog"
)

// Loader reads a site's content from disk.
type Loader struct {
	contentDir string
	dataDir    string
	ignore     []string
	drafts     bool
	titleCaser cases.Caser
	md         goldmark.Markdown
	logger     *slog.Logger
}

// NewLoader creates a Loader for the directories named in cfg.
func NewLoader(cfg config.Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		contentDir: cfg.ContentDir,
		dataDir:    cfg.DataDir,
		ignore:     cfg.Ignore,
		drafts:     cfg.Drafts,
		titleCaser: cases.Title(cfg.Tag()),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		logger: logger,
	}
}

// Load reads the profile data and walks the content directory. A missing
// content directory is not an error: the site renders its empty states.
func (l *Loader) Load(ctx context.Context) (*model.SiteData, error) {
	site := &model.SiteData{
		Config:        map[string]interface{}{},
		ContentItems:  []*model.ContentItem{},
		Pages:         []*model.ContentItem{},
		Posts:         []*model.Post{},
		Projects:      []*model.Project{},
		ContentByType: make(map[string][]*model.ContentItem),
	}

	data, err := l.loadData()
	if err != nil {
		return nil, err
	}
	site.Profile = data.Profile
	site.SkillCategories = data.SkillCategories
	if site.Profile.Bio != "" {
		html, err := l.render([]byte(site.Profile.Bio))
		if err != nil {
			return nil, fmt.Errorf("failed to convert profile bio to HTML: %w", err)
		}
		site.Profile.BioHTML = html
	}

	if _, err := os.Stat(l.contentDir); os.IsNotExist(err) {
		l.logger.Warn("content directory not found, rendering empty site", "dir", l.contentDir)
		return site, nil
	}

	l.logger.Debug("processing content", "dir", l.contentDir)
	projectSlugs := make(map[string]string)
	postSlugs := make(map[string]string)
	walkErr := filepath.WalkDir(l.contentDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(l.contentDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		if l.ignored(relPath) {
			l.logger.Debug("skipping ignored file", "path", path)
			return nil
		}

		item, body, err := l.parseItem(path, relPath)
		if err != nil {
			return err
		}
		switch item.Type {
		case TypeProject:
			project := l.project(item)
			project.Slug = l.claimSlug(projectSlugs, project.Slug, path)
			project.Permalink = "/projects/" + project.Slug + "/"
			item.Permalink = project.Permalink
			site.Projects = append(site.Projects, project)
		case TypePost:
			post := l.post(item, body)
			if !post.Published && !l.drafts {
				l.logger.Debug("skipping unpublished post", "path", path)
				return nil
			}
			post.Slug = l.claimSlug(postSlugs, post.Slug, path)
			post.Permalink = "/blog/" + post.Slug + "/"
			item.Permalink = post.Permalink
			site.Posts = append(site.Posts, post)
		default:
			site.Pages = append(site.Pages, item)
		}
		site.ContentItems = append(site.ContentItems, item)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", walkErr)
	}

	sortItems(site.ContentItems)
	for _, item := range site.ContentItems {
		site.ContentByType[item.Type] = append(site.ContentByType[item.Type], item)
	}
	sortPosts(site.Posts)
	sortProjects(site.Projects)

	l.logger.Info("content loaded",
		"items", len(site.ContentItems),
		"projects", len(site.Projects),
		"posts", len(site.Posts),
		"pages", len(site.Pages))
	return site, nil
}

func (l *Loader) ignored(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range l.ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// parseItem reads one markdown file. It returns the raw markdown body along
// with the item so callers can derive word counts.
func (l *Loader) parseItem(path, relPath string) (*model.ContentItem, []byte, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	var fmData map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fmData)
	if err != nil {
		l.logger.Warn("could not parse front matter, treating as pure markdown", "path", path, "error", err)
		body = fileBytes
		fmData = nil
	}
	if fmData == nil {
		fmData = make(map[string]interface{})
	}

	html, err := l.render(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	if dir := filepath.Base(filepath.Dir(relPath)); baseName == "index" && dir != "." {
		baseName = dir
	}
	title := stringField(fmData, "title")
	if title == "" {
		title = l.titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(baseName))
	}

	item := &model.ContentItem{
		Title:       title,
		Type:        itemType(relPath, fmData),
		SourcePath:  path,
		Permalink:   permalink(relPath),
		ContentHTML: html,
		Frontmatter: fmData,
		Summary:     stringField(fmData, "summary"),
		Layout:      stringField(fmData, "layout"),
	}
	if raw, ok := fmData["date"]; ok {
		date, ok := parseDate(raw)
		if !ok {
			l.logger.Warn("could not parse date, use YYYY-MM-DD or RFC3339", "path", path, "date", raw)
		}
		item.Date = date
	}
	return item, body, nil
}

func (l *Loader) render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := l.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// itemType is the first directory of relPath, overridden by front matter.
// "posts" is accepted as an alias of the blog directory.
func itemType(relPath string, fm map[string]interface{}) string {
	t := TypePage
	parts := strings.Split(filepath.ToSlash(filepath.Dir(relPath)), "/")
	if len(parts) > 0 && parts[0] != "." && parts[0] != "" {
		t = parts[0]
	}
	if fmType := stringField(fm, "type"); fmType != "" {
		t = fmType
	}
	switch t {
	case "posts", "post":
		return TypePost
	case "project":
		return TypeProject
	}
	return t
}

// permalink maps a content file to its site path. An index.md file stands
// for its directory.
func permalink(relPath string) string {
	p := "/" + strings.TrimSuffix(filepath.ToSlash(relPath), filepath.Ext(relPath))
	p = path.Clean(p)
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// claimSlug records slug as used by source in taken. A slug already used by
// another file gets the first free numeric suffix.
func (l *Loader) claimSlug(taken map[string]string, slug, source string) string {
	claimed := slug
	for n := 2; ; n++ {
		owner, ok := taken[claimed]
		if !ok {
			break
		}
		if n == 2 {
			l.logger.Warn("duplicate slug, renaming", "slug", slug, "path", source, "conflictsWith", owner)
		}
		claimed = slug + "-" + strconv.Itoa(n)
	}
	taken[claimed] = source
	return claimed
}

func sortItems(items []*model.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.IsZero() {
			return false
		}
		if items[j].Date.IsZero() {
			return true
		}
		return items[i].Date.After(items[j].Date)
	})
}

func sortPosts(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.IsZero() {
			return false
		}
		if posts[j].Date.IsZero() {
			return true
		}
		return posts[i].Date.After(posts[j].Date)
	})
}

// sortProjects puts featured projects first, then newest start date first.
func sortProjects(projects []*model.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.StartDate.IsZero() {
			return false
		}
		if b.StartDate.IsZero() {
			return true
		}
		return a.StartDate.After(b.StartDate)
	})
}
