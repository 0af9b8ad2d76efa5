package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new story",
	Long: `Create a story on the content service.

Heading and description are required; the description must be at least
10 characters. Unset author fields fall back to your session author.

Examples:
  storyctl create --heading "My Story" --description "Something worth reading"
  storyctl create --heading "Hi" --description "A longer text" --sub-heading "An aside"`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("heading", "", "story heading (required)")
	createCmd.Flags().String("description", "", "story body (required, min 10 characters)")
	createCmd.Flags().String("sub-heading", "", "optional subheading")
	createCmd.Flags().String("image", "", "cover image URL")
	createCmd.Flags().String("author", "", "author name (default: session author)")
	createCmd.Flags().String("author-image", "", "author avatar URL")
}

func runCreate(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, author, err := newController()
	if err != nil {
		return err
	}

	if err := ctrl.Login(cmd.Context()); err != nil {
		return listError(err)
	}

	draft := draftFromFlags(cmd)
	draft.ApplyDefaults(author)

	ctrl.NewStory(author)
	if err := ctrl.Save(cmd.Context(), draft); err != nil {
		return saveError(err)
	}

	printer.Success("Story created: %s", printer.Bold(draft.Heading))
	printer.PrintHints("create")
	return nil
}

func draftFromFlags(cmd *cobra.Command) story.Draft {
	heading, _ := cmd.Flags().GetString("heading")
	description, _ := cmd.Flags().GetString("description")
	subHeading, _ := cmd.Flags().GetString("sub-heading")
	image, _ := cmd.Flags().GetString("image")
	author, _ := cmd.Flags().GetString("author")
	authorImage, _ := cmd.Flags().GetString("author-image")

	return story.Draft{
		Heading:     heading,
		Description: description,
		SubHeading:  subHeading,
		Image:       image,
		Author:      author,
		AuthorImage: authorImage,
	}
}

func saveError(err error) error {
	var verrs app.ValidationErrors
	if errors.As(err, &verrs) {
		detail := ""
		for _, v := range verrs {
			if detail != "" {
				detail += "\n"
			}
			detail += v.Field + ": " + v.Message
		}
		return &output.CLIError{
			Summary:    "story rejected",
			Detail:     detail,
			Suggestion: "Fix the fields above and retry",
			ExitCode:   output.ExitValidationError,
		}
	}
	return &output.CLIError{
		Summary:  app.MsgSaveFailed,
		Detail:   err.Error(),
		ExitCode: output.ExitServiceError,
	}
}
