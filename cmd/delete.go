package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a story",
	Long: `Delete a story from the content service. Asks for confirmation
unless --yes is passed.

Examples:
  storyctl delete 3            # Delete with confirmation prompt
  storyctl delete 3 --yes      # Delete without prompting`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, _, err := newController()
	if err != nil {
		return err
	}

	if err := ctrl.Login(cmd.Context()); err != nil {
		return listError(err)
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")

	confirmed := false
	confirm := func(s story.Story) bool {
		if skipConfirm {
			confirmed = true
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %q by %s? [y/N]: ", s.Heading, s.Author)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		confirmed = answer == "y" || answer == "yes"
		return confirmed
	}

	if err := ctrl.Delete(cmd.Context(), args[0], confirm); err != nil {
		var intentErr *app.IntentError
		if errors.As(err, &intentErr) {
			return &output.CLIError{
				Summary:    fmt.Sprintf("unknown story: %s", args[0]),
				Suggestion: "Run 'storyctl list' to see available stories",
				ExitCode:   output.ExitUsageError,
			}
		}
		return &output.CLIError{
			Summary:  app.MsgDeleteFailed,
			Detail:   err.Error(),
			ExitCode: output.ExitServiceError,
		}
	}

	if !confirmed {
		printer.Info("Delete cancelled")
		return nil
	}

	printer.Success("Story %s deleted", args[0])
	printer.PrintHints("delete")
	return nil
}
