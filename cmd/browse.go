package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive story session",
	Long: `Start an interactive terminal session against the content service:
list, create, edit, delete and favorite stories from a prompt.

Example:
  storyctl browse`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctrl, author, err := newController()
	if err != nil {
		return err
	}

	printer := newPrinter()
	session := view.NewSession(ctrl, printer, cmd.InOrStdin(), os.Stdout, author)

	if err := session.Run(cmd.Context()); err != nil {
		return &output.CLIError{
			Summary:  "session ended with an error",
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
		}
	}
	return nil
}
