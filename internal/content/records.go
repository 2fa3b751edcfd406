package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Bitlatte/folio/internal/model"
)

// wordsPerMinute drives the derived read time of posts.
const wordsPerMinute = 200

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (l *Loader) project(item *model.ContentItem) *model.Project {
	fm := item.Frontmatter
	slug := slugField(fm, item)

	p := &model.Project{
		ID:           idField(fm, item),
		Slug:         slug,
		Title:        item.Title,
		Description:  stringField(fm, "description"),
		Technologies: stringsField(fm, "technologies"),
		Highlights:   stringsField(fm, "highlights"),
		GitHubURL:    stringField(fm, "githubUrl"),
		LiveURL:      stringField(fm, "liveUrl"),
		Featured:     boolField(fm, "featured", false),
		Status:       strings.ToLower(stringField(fm, "status")),
		ContentHTML:  item.ContentHTML,
		Permalink:    "/projects/" + slug + "/",
		SourcePath:   item.SourcePath,
	}
	if p.Description == "" {
		p.Description = item.Summary
	}
	if raw, ok := fm["startDate"]; ok {
		p.StartDate, _ = parseDate(raw)
	}
	if p.StartDate.IsZero() {
		p.StartDate = item.Date
	}
	if raw, ok := fm["endDate"]; ok {
		p.EndDate, _ = parseDate(raw)
	}
	item.Permalink = p.Permalink
	return p
}

func (l *Loader) post(item *model.ContentItem, body []byte) *model.Post {
	fm := item.Frontmatter
	slug := slugField(fm, item)

	p := &model.Post{
		ID:          idField(fm, item),
		Slug:        slug,
		Title:       item.Title,
		Excerpt:     stringField(fm, "excerpt"),
		Date:        item.Date,
		ReadTime:    stringField(fm, "readTime"),
		Category:    strings.TrimSpace(stringField(fm, "category")),
		Published:   boolField(fm, "published", true) && !boolField(fm, "draft", false),
		ContentHTML: item.ContentHTML,
		Permalink:   "/blog/" + slug + "/",
		SourcePath:  item.SourcePath,
	}
	if p.Excerpt == "" {
		p.Excerpt = item.Summary
	}
	if p.ReadTime == "" {
		p.ReadTime = ReadTime(body)
	}
	item.Permalink = p.Permalink
	return p
}

// ReadTime estimates how long src takes to read, rounded up to whole minutes.
func ReadTime(src []byte) string {
	words := len(strings.Fields(string(src)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// idField returns the front matter id or a UUID derived from the source path,
// which stays stable across builds.
func idField(fm map[string]interface{}, item *model.ContentItem) string {
	if raw, ok := fm["id"]; ok && raw != nil {
		if id := fmt.Sprint(raw); id != "" {
			return id
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.SourcePath)).String()
}

// slugField returns the front matter slug or the last permalink segment: the
// file name, or the directory name for an index.md file.
func slugField(fm map[string]interface{}, item *model.ContentItem) string {
	if s := model.Slugify(stringField(fm, "slug")); s != "" {
		return s
	}
	segments := strings.Split(strings.Trim(item.Permalink, "/"), "/")
	if s := model.Slugify(segments[len(segments)-1]); s != "" {
		return s
	}
	return model.Slugify(item.Title)
}

func stringField(fm map[string]interface{}, key string) string {
	switch v := fm[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case fmt.Stringer:
		return v.String()
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	}
	return ""
}

// stringsField accepts a YAML/TOML list or a single comma separated string.
// Empty entries are dropped.
func stringsField(fm map[string]interface{}, key string) []string {
	var out []string
	switch v := fm[key].(type) {
	case []interface{}:
		for _, e := range v {
			if e == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(e)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, e := range v {
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, e := range strings.Split(v, ",") {
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func boolField(fm map[string]interface{}, key string, def bool) bool {
	switch v := fm[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return def
}

func parseDate(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		for _, format := range dateFormats {
			if t, err := time.Parse(format, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
