package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/config"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the content service",
	Long: `Sign in and store a local session marker.

The service requires no credentials; login only checks that the service
is reachable and records who you are for subsequent commands.

Examples:
  storyctl login                       # Sign in as the default author
  storyctl login --as "Jane Doe"       # Sign in under a specific name`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().String("as", "", "author name to record in the session")
}

func runLogin(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	author, _ := cmd.Flags().GetString("as")
	if author == "" {
		author = cfg.Defaults.Author
	}
	if author == "" {
		author = story.DefaultDraftAuthor
	}

	client := newAPIClient()
	if err := client.Health(cmd.Context()); err != nil {
		logger.Error("health check failed", "error", err)
		return &output.CLIError{
			Summary:    "content service unreachable",
			Detail:     fmt.Sprintf("health check against %s failed: %v", cfg.Server.URL, err),
			Suggestion: "Check the service URL with --server or start the dev server with 'storyctl serve'",
			ExitCode:   output.ExitServiceError,
		}
	}

	if err := config.SaveSession(author); err != nil {
		return &output.CLIError{
			Summary:  "could not store session",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	printer.Success("Signed in as %s", printer.Bold(author))
	printer.PrintHints("login")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	if err := config.ClearSession(); err != nil {
		return &output.CLIError{
			Summary:  "could not clear session",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	printer.Success("Signed out")
	return nil
}
