package theme

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
)

func testSite() *model.SiteData {
	return &model.SiteData{
		Profile: model.Profile{Name: "Jane Doe", Email: "jane@example.com"},
		SkillCategories: []model.SkillCategory{
			{Name: "languages", DisplayName: "Languages", Skills: []model.Skill{{Name: "Go", Years: 5}}},
		},
		Projects: []*model.Project{
			{Title: "Pipeline", Permalink: "/projects/pipeline/", Featured: true, Status: model.StatusCompleted,
				Technologies: []string{"Go", "SQL", "Kafka", "Docker", "Kubernetes", "Terraform", "AWS"},
				StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Title: "Notebook", Permalink: "/projects/notebook/", Status: "mystery", Technologies: []string{"Python"}},
		},
		Posts: []*model.Post{
			{Title: "Hello", Permalink: "/blog/hello/", Category: "backend", ReadTime: "1 min read",
				Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestEmbeddedThemes(t *testing.T) {
	assert.Equal(t, []string{"classic", "grid", "modern"}, Names())

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			require.NoError(t, err)
			assert.NotNil(t, th.Static())
			for _, page := range requiredPages {
				assert.True(t, th.Has(page), page)
			}
			renderAll(t, th)
		})
	}

	grid, err := Load("grid")
	require.NoError(t, err)
	assert.Equal(t, 6, grid.FacetLimit)
}

func renderAll(t *testing.T, th *Theme) {
	t.Helper()
	site := testSite()
	for _, page := range requiredPages {
		data := NewPageData(site, "Site", "", page, "Title").WithProjects(site.Projects)
		data.Posts = site.Posts
		data.Project = site.Projects[0]
		data.Post = site.Posts[0]
		data.Item = &model.ContentItem{Title: "Uses"}
		data.TagHrefs = map[string]string{"Go": "/projects/tech/go/"}
		data.CategoryHref = "/blog/category/backend/"

		var buf bytes.Buffer
		require.NoError(t, th.Render(&buf, page, data), page)
		assert.Contains(t, buf.String(), "<title>Title | Site</title>", page)
	}
}

func TestLoadUnknownTheme(t *testing.T) {
	_, err := Load("brutalist")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestRenderProjectsWithFilter(t *testing.T) {
	th, err := Load("modern")
	require.NoError(t, err)
	site := testSite()

	sum := facet.Derive(site.Projects, model.ProjectTechnologies)
	sel := facet.Value("Python")
	data := NewPageData(site, "Site", "", PageProjects, "Projects")
	data.WithProjects(facet.Filter(site.Projects, model.ProjectTechnologies, sel))
	data.Selection = sel
	data.Filters = []Nav{NewNav("Technologies", sum, sel, th.FacetLimit, func(s facet.Selection) string {
		return "/projects/tech/" + model.Slugify(s.Value()) + "/"
	})}

	var buf bytes.Buffer
	require.NoError(t, th.Render(&buf, PageProjects, data))
	out := buf.String()

	assert.Contains(t, out, "Projects: Python")
	assert.Contains(t, out, "Notebook")
	assert.NotContains(t, out, "Pipeline")
	assert.Contains(t, out, "All (2)")
	assert.Contains(t, out, `class="chip selected" href="/projects/tech/python/"`)
	assert.Contains(t, out, "status-planning", "unknown statuses render as planning")
}

func TestProjectLinksUseBaseURL(t *testing.T) {
	const base = "https://example.com/folio/"
	for _, name := range Names() {
		th, err := Load(name)
		require.NoError(t, err)
		for _, page := range []string{PageHome, PageProjects} {
			t.Run(name+"/"+page, func(t *testing.T) {
				data := NewPageData(testSite(), "Site", base, page, "")
				data.WithProjects(data.Site.Projects)

				var buf bytes.Buffer
				require.NoError(t, th.Render(&buf, page, data))
				out := buf.String()
				assert.Contains(t, out, `href="https://example.com/folio/projects/pipeline/"`)
				assert.NotContains(t, out, `href="/projects/pipeline/"`)
			})
		}
	}
}

func TestRenderEmptyStates(t *testing.T) {
	site := &model.SiteData{}

	for _, name := range Names() {
		th, err := Load(name)
		require.NoError(t, err)

		data := NewPageData(site, "Site", "", PageProjects, "Projects").WithProjects(nil)
		data.Selection = facet.Value("Cobol")
		data.Filters = []Nav{NewNav("Technologies", facet.Summary{Entries: []facet.Entry{}}, data.Selection, 0, func(facet.Selection) string { return "/" })}

		var buf bytes.Buffer
		require.NoError(t, th.Render(&buf, PageProjects, data), name)
		assert.Contains(t, buf.String(), "No projects found for the selected filter.", name)

		buf.Reset()
		blog := NewPageData(site, "Site", "", PageBlog, "Blog")
		require.NoError(t, th.Render(&buf, PageBlog, blog), name)
		assert.Contains(t, buf.String(), "No posts yet", name)

		buf.Reset()
		home := NewPageData(site, "Site", "", PageHome, "")
		require.NoError(t, th.Render(&buf, PageHome, home), name)
		assert.Contains(t, buf.String(), DefaultName, name)
		assert.Contains(t, buf.String(), DefaultRole, name)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	sub, err := fs.Sub(embedded, "themes/classic")
	require.NoError(t, err)
	require.NoError(t, os.CopyFS(dir, sub))

	th, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, th.FacetLimit)

	require.NoError(t, os.Remove(filepath.Join(dir, "contact.html")))
	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact.html")
}

func TestWithDefaults(t *testing.T) {
	p := WithDefaults(model.Profile{Role: "Engineer"})
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, "Engineer", p.Role)
	assert.Equal(t, DefaultDescription, p.Description)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Site", (&PageData{SiteTitle: "Site"}).Title())
	assert.Equal(t, "Blog", (&PageData{PageTitle: "Blog"}).Title())
	assert.Equal(t, "Blog | Site", (&PageData{SiteTitle: "Site", PageTitle: "Blog"}).Title())
}

func TestFuncs(t *testing.T) {
	start := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2022 - 2024", yearRange(start, end))
	assert.Equal(t, "2022", yearRange(start, start))
	assert.Equal(t, "2022", yearRange(start, time.Time{}))
	assert.Equal(t, "", yearRange(time.Time{}, time.Time{}))

	assert.Equal(t, "in progress", statusLabel(model.StatusInProgress))
	assert.Equal(t, "planning", statusLabel("whatever"))
	assert.Equal(t, "status-archived", statusClass(model.StatusArchived))

	list := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, take(2, list))
	assert.Equal(t, list, take(5, list))
	assert.Equal(t, 1, more(2, list))
	assert.Equal(t, 0, more(3, list))

	assert.Equal(t, "/blog/", joinURL("", "/blog/"))
	assert.Equal(t, "https://jane.dev/blog/", joinURL("https://jane.dev/", "/blog/"))
	assert.Equal(t, "May 1, 2022", date(start))
}
