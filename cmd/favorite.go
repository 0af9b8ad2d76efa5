package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite <id>",
	Aliases: []string{"fav"},
	Short:   "Toggle a story's favorite flag",
	Long: `Toggle the favorite flag on a story. Favoriting a favorited story
removes the flag again.

Examples:
  storyctl favorite 3
  storyctl list --favorites    # See what you favorited`,
	Args: cobra.ExactArgs(1),
	RunE: runFavorite,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}

func runFavorite(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, _, err := newController()
	if err != nil {
		return err
	}

	if err := ctrl.Login(cmd.Context()); err != nil {
		return listError(err)
	}

	if err := ctrl.ToggleFavorite(cmd.Context(), args[0]); err != nil {
		return &output.CLIError{
			Summary:    app.MsgFavoriteFailed,
			Detail:     err.Error(),
			Suggestion: "Run 'storyctl list' to check the story id",
			ExitCode:   output.ExitServiceError,
		}
	}

	for _, s := range ctrl.Snapshot().Stories {
		if s.ID == args[0] {
			if s.IsFavorite {
				printer.Success("Story %s favorited %s", args[0], printer.FavoriteBadge(true))
			} else {
				printer.Success("Story %s unfavorited", args[0])
			}
			break
		}
	}

	printer.PrintHints("favorite")
	return nil
}
