package cmd

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundled dev content service",
	Long: `Run an in-memory content service for local development. It speaks
the same REST API the CLI talks to and starts with a few sample stories.

State lives in memory only and is lost on shutdown.

Examples:
  storyctl serve                      # Listen on :5000
  storyctl serve --addr :8080        # Custom address
  storyctl serve --empty             # Start with no sample stories`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().Bool("empty", false, "start with an empty store")
}

func runServe(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	addr, _ := cmd.Flags().GetString("addr")
	empty, _ := cmd.Flags().GetBool("empty")

	store := server.NewSeededStore()
	if empty {
		store = server.NewStore()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer.Info("Dev content service listening on %s", printer.Bold(addr))
	printer.Info("Point the CLI at it with --server http://localhost%s", addr)

	if err := server.Run(ctx, addr, store, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return &output.CLIError{
			Summary:  "dev server failed",
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
		}
	}

	printer.Success("Server stopped")
	return nil
}
