package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/story"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite <storyID>",
	Aliases: []string{"fav"},
	Short:   "Favorite a story",
	Long: `Mark a story as a favorite. Favoriting an already-favorited story
is a no-op.

Examples:
  snoozectl favorite abc-123`,
	Args: cobra.ExactArgs(1),
	RunE: runFavorite,
}

var unfavoriteCmd = &cobra.Command{
	Use:     "unfavorite <storyID>",
	Aliases: []string{"unfav"},
	Short:   "Remove a story from your favorites",
	Long: `Remove a story from your favorites. Unfavoriting a story that is
not a favorite is a no-op.

Examples:
  snoozectl unfavorite abc-123`,
	Args: cobra.ExactArgs(1),
	RunE: runUnfavorite,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Show your favorite stories",
	Long: `Show the stories you have favorited.

Examples:
  snoozectl favorites
  snoozectl favorites --json`,
	RunE: runFavorites,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(unfavoriteCmd)
	rootCmd.AddCommand(favoritesCmd)

	favoritesCmd.Flags().Bool("json", false, "output as JSON")
}

func runFavorite(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}
	storyID := args[0]

	if user.IsFavorite(storyID) {
		printer := newPrinter()
		printer.Info("story %s is already a favorite", storyID)
		return nil
	}

	st, _, err := findStory(cmd.Context(), user, storyID)
	if err != nil {
		if errors.Is(err, story.ErrNotFound) {
			return &output.CLIError{
				Summary:    fmt.Sprintf("story %s not found", storyID),
				Detail:     fmt.Sprintf("not in the first %d pages of the feed", searchPages),
				Suggestion: "check the ID with 'snoozectl stories'",
				ExitCode:   output.ExitNotFound,
				Err:        err,
			}
		}
		return output.WrapAPIError("fetching feed", err)
	}

	if err := sessions.AddFavorite(cmd.Context(), st); err != nil {
		return output.WrapAPIError("favoriting story", err)
	}

	printer := newPrinter()
	printer.Success("favorited %q (%s)", st.Title, st.ID)
	printer.PrintHints("favorite")
	return nil
}

func runUnfavorite(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}
	storyID := args[0]

	idx := user.FavoriteIndex(storyID)
	if idx < 0 {
		printer := newPrinter()
		printer.Info("story %s is not a favorite", storyID)
		return nil
	}
	st := user.Favorites[idx]

	if err := sessions.RemoveFavorite(cmd.Context(), st); err != nil {
		return output.WrapAPIError("unfavoriting story", err)
	}

	printer := newPrinter()
	printer.Success("unfavorited %q (%s)", st.Title, st.ID)
	printer.PrintHints("unfavorite")
	return nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(user.Favorites)
	}

	printer := newPrinter()
	if len(user.Favorites) == 0 {
		printer.Info("no favorites yet")
		printer.PrintHints("favorites")
		return nil
	}

	renderStoryTable(printer, user.Favorites, user)
	printer.Info("%d favorites", len(user.Favorites))
	printer.PrintHints("favorites")
	return nil
}
