// Package cmd contains all CLI commands for storyctl
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vocal-project/storyctl/internal/api"
	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/config"
	"github.com/vocal-project/storyctl/internal/output"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	serverURL string
	cfg       *config.Config
	logger    *slog.Logger
	version   = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "storyctl",
	Short: "Story content service CLI",
	Long: `storyctl is a CLI client for a story content service.

It lists, creates, edits, deletes and favorites stories against the
service's REST API, and bundles a dev server for local work.

Example usage:
  storyctl login               # Sign in (trivial gate, no credentials)
  storyctl list                # List stories
  storyctl create --heading "Hi" --description "..."
  storyctl browse              # Interactive session
  storyctl serve               # Run the bundled dev server`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .storyctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "content service URL (default: config server.url)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	logger.Debug("configuration loaded",
		slog.String("config_file", viper.ConfigFileUsed()),
		slog.String("server_url", cfg.Server.URL),
	)

	return nil
}

// newPrinter builds a printer honoring the config and --quiet.
func newPrinter() *output.Printer {
	return output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    output.ColorAuto,
		ConfigColors: cfg.Output.Colors,
		Quiet:        quiet,
	})
}

// newAPIClient builds the adapter against the configured service.
func newAPIClient() *api.Client {
	return api.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
}

// newController builds a controller for commands that operate on stories.
// They all require a signed-in session; the login gate is trivial but
// deliberate.
func newController() (*app.Controller, string, error) {
	author, ok := config.ActiveSession()
	if !ok {
		return nil, "", &output.CLIError{
			Summary:    "not signed in",
			Suggestion: "Run 'storyctl login' first",
			ExitCode:   output.ExitUsageError,
		}
	}
	if cfg.Defaults.Author != "" {
		author = cfg.Defaults.Author
	}
	return app.New(newAPIClient(), logger), author, nil
}
