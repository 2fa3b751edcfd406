// Package site turns loaded content and a theme into a static output tree.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
	"github.com/Bitlatte/folio/internal/theme"
)

// homeListSize is the number of projects and posts previewed on the home page.
const homeListSize = 3

// Report summarizes a finished build.
type Report struct {
	Theme    string
	Pages    int
	Projects int
	Posts    int
	Duration time.Duration
}

// Builder builds a site from a configuration.
type Builder struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// build holds the state of one Build call.
type build struct {
	*Builder
	site    *model.SiteData
	theme   *theme.Theme
	order   facet.Order
	limit   int
	written map[string]bool
	report  Report
}

// Build loads content, resolves the theme and writes every page into the
// output directory, which is cleaned first.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	start := time.Now()
	b.logger.Info("starting build", "outputDir", b.cfg.OutputDir, "baseURL", b.cfg.BaseURL, "siteTitle", b.cfg.SiteTitle)

	th, err := b.loadTheme()
	if err != nil {
		return Report{}, err
	}
	order, err := facet.ParseOrder(b.cfg.FacetOrder, b.cfg.Tag())
	if err != nil {
		return Report{}, err
	}

	site, err := content.NewLoader(b.cfg, b.logger).Load(ctx)
	if err != nil {
		return Report{}, err
	}
	site.Config = map[string]interface{}{
		"siteTitle": b.cfg.SiteTitle,
		"baseURL":   b.cfg.BaseURL,
		"theme":     th.Name,
		"language":  b.cfg.Language,
	}

	bd := &build{
		Builder: b,
		site:    site,
		theme:   th,
		order:   order,
		limit:   b.cfg.FacetLimit,
		written: make(map[string]bool),
		report:  Report{Theme: th.Name, Projects: len(site.Projects), Posts: len(site.Posts)},
	}
	if bd.limit < 0 {
		bd.limit = th.FacetLimit
	}

	if err := b.prepareOutput(th); err != nil {
		return Report{}, err
	}

	steps := []func(context.Context) error{
		bd.renderHome,
		bd.renderAbout,
		bd.renderContact,
		bd.renderProjects,
		bd.renderBlog,
		bd.renderPages,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return Report{}, err
		}
	}

	bd.report.Duration = time.Since(start)
	b.logger.Info("build completed",
		"theme", bd.report.Theme,
		"pages", bd.report.Pages,
		"duration", bd.report.Duration)
	return bd.report, nil
}

func (b *Builder) loadTheme() (*theme.Theme, error) {
	if b.cfg.LayoutsDir != "" && dirExists(b.cfg.LayoutsDir) {
		b.logger.Info("using layouts directory", "dir", b.cfg.LayoutsDir)
		return theme.LoadDir(b.cfg.LayoutsDir)
	}
	b.logger.Debug("using embedded theme", "theme", b.cfg.Theme)
	return theme.Load(b.cfg.Theme)
}

// prepareOutput empties the output directory and copies the theme's static
// assets, then the site's own, so site files override theme files.
func (b *Builder) prepareOutput(th *theme.Theme) error {
	outputDir := b.cfg.OutputDir
	b.logger.Debug("cleaning output directory", "dir", outputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if static := th.Static(); static != nil {
		if err := copyFS(static, outputDir); err != nil {
			return fmt.Errorf("failed to copy theme assets: %w", err)
		}
	}
	if dirExists(b.cfg.StaticDir) {
		b.logger.Debug("copying static assets", "from", b.cfg.StaticDir, "to", outputDir)
		if err := copyDirContents(b.cfg.StaticDir, outputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
	} else {
		b.logger.Debug("static assets directory not found, skipping copy", "dir", b.cfg.StaticDir)
	}
	return nil
}

func (bd *build) page(section, title string) *theme.PageData {
	return theme.NewPageData(bd.site, bd.cfg.SiteTitle, bd.cfg.BaseURL, section, title)
}

// write renders page into <outputDir><permalink>index.html.
func (bd *build) write(ctx context.Context, permalink, page string, data *theme.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bd.written[permalink] {
		return fmt.Errorf("page %s is written twice, check for duplicate slugs", permalink)
	}

	var buf bytes.Buffer
	if err := bd.theme.Render(&buf, page, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", permalink, err)
	}

	outputPath := filepath.Join(bd.cfg.OutputDir, filepath.FromSlash(permalink), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", permalink, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}

	bd.written[permalink] = true
	bd.report.Pages++
	bd.logger.Debug("generated page", "path", outputPath, "layout", page)
	return nil
}

func (bd *build) renderHome(ctx context.Context) error {
	data := bd.page(theme.PageHome, "")
	data.WithProjects(head(bd.site.Projects, homeListSize))
	data.Posts = head(bd.site.Posts, homeListSize)
	return bd.write(ctx, "/", theme.PageHome, data)
}

func (bd *build) renderAbout(ctx context.Context) error {
	return bd.write(ctx, "/about/", theme.PageAbout, bd.page(theme.PageAbout, "About"))
}

func (bd *build) renderContact(ctx context.Context) error {
	return bd.write(ctx, "/contact/", theme.PageContact, bd.page(theme.PageContact, "Contact"))
}

// renderPages writes standalone markdown pages. A front matter layout is
// used when the theme has it.
func (bd *build) renderPages(ctx context.Context) error {
	for _, item := range bd.site.Pages {
		if bd.written[item.Permalink] {
			bd.logger.Warn("content page shadowed by a built-in page, skipping", "path", item.SourcePath, "permalink", item.Permalink)
			continue
		}
		layout := theme.PagePage
		if item.Layout != "" {
			if bd.theme.Has(item.Layout) {
				layout = item.Layout
			} else {
				bd.logger.Warn("front matter layout not found, using default", "layout", item.Layout, "path", item.SourcePath, "default", layout)
			}
		}
		data := bd.page(theme.PagePage, item.Title)
		data.Item = item
		data.Content = item.ContentHTML
		data.Params = item.Frontmatter
		if err := bd.write(ctx, item.Permalink, layout, data); err != nil {
			return err
		}
	}
	return nil
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
