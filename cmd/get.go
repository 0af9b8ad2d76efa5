package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/api"
	"github.com/vocal-project/storyctl/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single story",
	Long: `Fetch one story by id and print it in full.

Examples:
  storyctl get 3               # Show story 3
  storyctl get 3 --json        # Output as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().Bool("json", false, "output as JSON")
}

func runGet(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, _, err := newController()
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := ctrl.Story(cmd.Context(), args[0])
	if err != nil {
		var notFound *api.NotFoundError
		if errors.As(err, &notFound) {
			return &output.CLIError{
				Summary:    fmt.Sprintf("story %s not found", args[0]),
				Suggestion: "Run 'storyctl list' to see available stories",
				ExitCode:   output.ExitUsageError,
			}
		}
		return &output.CLIError{
			Summary:  "could not fetch story",
			Detail:   err.Error(),
			ExitCode: output.ExitServiceError,
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	printer.Header(s.Heading)
	if s.SubHeading != "" {
		printer.Print("%s", printer.Dim(s.SubHeading))
		fmt.Println()
	}
	printer.Print("%s", s.Description)
	fmt.Println()
	printer.Info("by %s on %s %s", printer.Bold(s.Author), s.CreatedAt, printer.FavoriteBadge(s.IsFavorite))
	printer.PrintHints("get")
	return nil
}
