package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/folio/internal/site"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the portfolio site from data, content, and static assets",
	Long: `The build command reads './data/profile.yaml' and the Markdown files in
'./content/', renders them with the configured theme (or './layouts/' when
present), writes one page per technology, status, and blog category, copies
static assets from './static/', and generates the site in the configured
output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := site.NewBuilder(appConfig, logger).Build(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages (%d projects, %d posts) with theme %s in %s\n",
			report.Pages, report.Projects, report.Posts, report.Theme, report.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
