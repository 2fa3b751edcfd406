package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
)

func facetSite() *model.SiteData {
	return &model.SiteData{
		Projects: []*model.Project{
			{Title: "Alpha", Technologies: []string{"Go", "SQL"}, Status: model.StatusCompleted},
			{Title: "Beta", Technologies: []string{"Go"}},
		},
		Posts: []*model.Post{
			{Title: "First", Category: "backend"},
			{Title: "Second", Category: "devops"},
			{Title: "Third", Category: "backend"},
		},
	}
}

func TestPrintFacets(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		sel      facet.Selection
		contains []string
		missing  []string
	}{
		{
			name:     "technologies all",
			kind:     "technologies",
			sel:      facet.All,
			contains: []string{"Technologies", "All", "(2)", "Go", "SQL", "- Alpha", "- Beta"},
		},
		{
			name:     "technologies selected",
			kind:     "technologies",
			sel:      facet.Value("SQL"),
			contains: []string{"> SQL (1)", "- Alpha"},
			missing:  []string{"- Beta"},
		},
		{
			name:     "categories",
			kind:     "categories",
			sel:      facet.Value("backend"),
			contains: []string{"> backend (2)", "- First", "- Third"},
			missing:  []string{"- Second"},
		},
		{
			name:     "vanished value",
			kind:     "status",
			sel:      facet.Value("archived"),
			contains: []string{"No items found for the selected filter."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printFacets(&buf, facetSite(), tt.kind, tt.sel, facet.Lexical))
			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPrintFacetsUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, printFacets(&buf, facetSite(), "colors", facet.All, facet.Lexical))
}
