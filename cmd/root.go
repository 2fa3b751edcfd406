package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/folio/internal/config"
)

var cfgFile string
var logLevel string
var appConfig config.Config
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio sites from markdown",
	Long: `folio builds a personal portfolio site (home, about, projects, blog and
contact pages) from a profile data file and markdown content, rendered with
one of several interchangeable themes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides logLevel)")
}

func initializeConfig(_ *cobra.Command) error {
	cfg, used, err := config.Load(cfgFile, ".")
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if used != "" {
		logger.Info("using config file", "file", used)
	} else {
		logger.Info("no config file found, using defaults and environment variables")
	}
	appConfig = cfg
	return nil
}
