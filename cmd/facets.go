package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/facet"
	"github.com/Bitlatte/folio/internal/model"
)

var facetSelect string

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
)

// facetsCmd prints the facets of a collection and the items of one selection.
var facetsCmd = &cobra.Command{
	Use:       "facets [technologies|status|categories]",
	Short:     "Lists the facets of projects or posts",
	Long:      `The facets command loads the site content and prints each facet value with its item count, followed by the items matching --select (default: all).`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"technologies", "status", "categories"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "technologies"
		if len(args) == 1 {
			kind = args[0]
		}
		order, err := facet.ParseOrder(appConfig.FacetOrder, appConfig.Tag())
		if err != nil {
			return err
		}
		site, err := content.NewLoader(appConfig, logger).Load(cmd.Context())
		if err != nil {
			return err
		}

		sel := facet.All
		if cmd.Flags().Changed("select") {
			sel = facet.Value(facetSelect)
		}
		return printFacets(cmd.OutOrStdout(), site, kind, sel, order)
	},
}

func printFacets(w io.Writer, site *model.SiteData, kind string, sel facet.Selection, order facet.Order) error {
	switch kind {
	case "technologies":
		return printCollection(w, "Technologies", site.Projects, model.ProjectTechnologies, sel, order, projectTitle)
	case "status":
		return printCollection(w, "Status", site.Projects, model.ProjectStatus, sel, order, projectTitle)
	case "categories":
		return printCollection(w, "Categories", site.Posts, model.PostCategory, sel, order, postTitle)
	}
	return fmt.Errorf("unknown facet %q", kind)
}

func projectTitle(p *model.Project) string { return p.Title }
func postTitle(p *model.Post) string       { return p.Title }

func printCollection[T any](w io.Writer, title string, items []T, ex facet.Extractor[T], sel facet.Selection, order facet.Order, name func(T) string) error {
	summary := facet.Derive(items, ex, facet.WithOrder(order))

	fmt.Fprintln(w, headerStyle.Render(title))
	line := func(label string, count int, selected bool) {
		text := fmt.Sprintf("  %s %s", label, countStyle.Render(fmt.Sprintf("(%d)", count)))
		if selected {
			text = selectedStyle.Render("> " + label + fmt.Sprintf(" (%d)", count))
		}
		fmt.Fprintln(w, text)
	}
	line("All", summary.Total, sel.IsAll())
	for _, e := range summary.Entries {
		line(e.Value, e.Count, !sel.IsAll() && sel.Value() == e.Value)
	}

	matched := facet.Filter(items, ex, sel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Items (%s)", sel)))
	if len(matched) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("  No items found for the selected filter."))
		return nil
	}
	for _, item := range matched {
		fmt.Fprintf(w, "  - %s\n", name(item))
	}
	return nil
}

func init() {
	facetsCmd.Flags().StringVarP(&facetSelect, "select", "s", "", "facet value to list items for")
	rootCmd.AddCommand(facetsCmd)
}
