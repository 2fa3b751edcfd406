package theme

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/Bitlatte/folio/internal/model"
)

var funcs = template.FuncMap{
	"year":        year,
	"date":        date,
	"statusClass": statusClass,
	"statusLabel": statusLabel,
	"take":        take,
	"more":        more,
	"slug":        model.Slugify,
	"url":         joinURL,
	"yearRange":   yearRange,
	"card":        newCard,
}

var statusClasses = map[string]string{
	model.StatusCompleted:  "status-completed",
	model.StatusInProgress: "status-in-progress",
	model.StatusPlanning:   "status-planning",
	model.StatusArchived:   "status-archived",
}

func year(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Year())
}

// yearRange renders "2023" or "2023 - 2024" for a project's dates.
func yearRange(start, end time.Time) string {
	s, e := year(start), year(end)
	if e == "" || e == s {
		return s
	}
	if s == "" {
		return e
	}
	return s + " - " + e
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// statusClass maps a project status to its CSS class. Unknown statuses are
// shown as planning.
func statusClass(status string) string {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	return statusClasses[model.StatusPlanning]
}

func statusLabel(status string) string {
	if _, ok := statusClasses[status]; !ok {
		status = model.StatusPlanning
	}
	return strings.ReplaceAll(status, "-", " ")
}

func take(n int, list []string) []string {
	if n < 0 || len(list) <= n {
		return list
	}
	return list[:n]
}

// more returns how many elements of list take(n, list) leaves out.
func more(n int, list []string) int {
	if n < 0 || len(list) <= n {
		return 0
	}
	return len(list) - n
}

// joinURL prefixes an absolute site path with the base URL.
func joinURL(base, p string) string {
	if base == "" {
		return p
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "/")
}

// Card is a project rendered by a shared partial, which has no access to the
// page's base URL otherwise.
type Card struct {
	*model.Project
	BaseURL string
}

func newCard(baseURL string, p *model.Project) Card {
	return Card{Project: p, BaseURL: baseURL}
}
