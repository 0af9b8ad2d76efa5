package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stories",
	Long: `List all stories from the content service.

Examples:
  storyctl list                      # List all stories
  storyctl list --favorites          # Only favorited stories
  storyctl list --search "hack"      # Filter by text match
  storyctl list --json               # Output as JSON`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("favorites", false, "only show favorited stories")
	listCmd.Flags().StringP("search", "s", "", "filter stories by text match")
	listCmd.Flags().Bool("json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	ctrl, _, err := newController()
	if err != nil {
		return err
	}

	favoritesOnly, _ := cmd.Flags().GetBool("favorites")
	search, _ := cmd.Flags().GetString("search")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var stories []story.Story
	if favoritesOnly {
		stories, err = ctrl.FavoriteStories(cmd.Context())
		if err != nil {
			return listError(err)
		}
	} else {
		if err := ctrl.Login(cmd.Context()); err != nil {
			return listError(err)
		}
		stories = ctrl.Snapshot().Stories
	}

	if search != "" {
		stories = filterStories(stories, search)
	}

	if jsonOutput {
		if stories == nil {
			stories = []story.Story{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stories)
	}

	if len(stories) == 0 {
		printer.Info("No stories found. Create your first story with 'storyctl create'!")
		return nil
	}

	printer.Header("Stories")

	table := output.NewTable([]string{"ID", "FAV", "HEADING", "AUTHOR", "CREATED"})
	for _, s := range stories {
		table.AddRow([]string{
			s.ID,
			printer.FavoriteBadge(s.IsFavorite),
			printer.Bold(s.Heading),
			s.Author,
			s.CreatedAt,
		})
	}
	table.Render()
	fmt.Println()

	printer.Info("%d stories", len(stories))
	printer.PrintHints("list")
	return nil
}

// filterStories matches search text case-insensitively across the
// visible text fields, same as the interactive session.
func filterStories(stories []story.Story, search string) []story.Story {
	needle := strings.ToLower(search)
	matched := make([]story.Story, 0, len(stories))
	for _, s := range stories {
		haystack := strings.ToLower(s.Heading + " " + s.SubHeading + " " + s.Description + " " + s.Author)
		if strings.Contains(haystack, needle) {
			matched = append(matched, s)
		}
	}
	return matched
}

func listError(err error) error {
	return &output.CLIError{
		Summary:    app.MsgLoadFailed,
		Detail:     err.Error(),
		Suggestion: "Check the service URL with 'storyctl config' or start the dev server with 'storyctl serve'",
		ExitCode:   output.ExitServiceError,
	}
}
