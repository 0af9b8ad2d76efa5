package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/api"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing story",
	Long: `Edit a story on the content service. Only the flags you pass are
changed; everything else keeps its current value.

Examples:
  storyctl edit 3 --heading "New heading"
  storyctl edit 3 --description "A reworked body for this story"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("heading", "", "story heading")
	editCmd.Flags().String("description", "", "story body (min 10 characters)")
	editCmd.Flags().String("sub-heading", "", "subheading")
	editCmd.Flags().String("image", "", "cover image URL")
	editCmd.Flags().String("author", "", "author name")
	editCmd.Flags().String("author-image", "", "author avatar URL")
}

func runEdit(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, _, err := newController()
	if err != nil {
		return err
	}

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

	if err := ctrl.Login(cmd.Context()); err != nil {
		return listError(err)
	}

	draft := story.DraftFromStory(s)
	applyFlagOverrides(cmd, &draft)

	ctrl.EditStory(s)
	if err := ctrl.Save(cmd.Context(), draft); err != nil {
		return saveError(err)
	}

	printer.Success("Story %s updated", printer.Bold(s.ID))
	printer.PrintHints("edit")
	return nil
}

// applyFlagOverrides merges only the flags the user actually set into the
// draft, so an empty --heading is still an explicit (and invalid) value.
func applyFlagOverrides(cmd *cobra.Command, draft *story.Draft) {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = v
		}
	}
	set("heading", &draft.Heading)
	set("description", &draft.Description)
	set("sub-heading", &draft.SubHeading)
	set("image", &draft.Image)
	set("author", &draft.Author)
	set("author-image", &draft.AuthorImage)
}
