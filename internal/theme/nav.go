package theme

import "github.com/Bitlatte/folio/internal/facet"

// NavEntry is one facet link.
type NavEntry struct {
	Label    string
	Count    int
	Href     string
	Selected bool
	// All marks the pseudo-entry that clears the selection.
	All bool
}

// Nav is the facet navigation of a list page.
type Nav struct {
	Title   string
	Entries []NavEntry
	// Hidden is the number of facet values left out by the display limit.
	Hidden int
}

// NewNav builds the facet navigation for summary. The first entry is the
// "All" pseudo-facet whose count is summary.Total. limit caps the number of
// concrete entries (0 = no cap) but never hides the selected one. href maps a
// selection to its link.
func NewNav(title string, summary facet.Summary, sel facet.Selection, limit int, href func(facet.Selection) string) Nav {
	nav := Nav{Title: title}
	nav.Entries = append(nav.Entries, NavEntry{
		Label:    "All",
		Count:    summary.Total,
		Href:     href(facet.All),
		Selected: sel.IsAll(),
		All:      true,
	})

	shown := 0
	for _, e := range summary.Entries {
		selected := !sel.IsAll() && sel.Value() == e.Value
		if limit > 0 && shown >= limit && !selected {
			nav.Hidden++
			continue
		}
		shown++
		nav.Entries = append(nav.Entries, NavEntry{
			Label:    e.Value,
			Count:    e.Count,
			Href:     href(facet.Value(e.Value)),
			Selected: selected,
		})
	}
	return nav
}

// Active returns the selected entry.
func (n Nav) Active() NavEntry {
	for _, e := range n.Entries {
		if e.Selected {
			return e
		}
	}
	return NavEntry{}
}
