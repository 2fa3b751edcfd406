package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bitlatte/folio/internal/server"
)

var serverPort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server to serve your output directory. It also watches your content, data,
layouts, and static directories for changes and automatically rebuilds the site.
Build metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.New(appConfig, serverPort, logger).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
