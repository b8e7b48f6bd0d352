package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/story"
)

var editCmd = &cobra.Command{
	Use:   "edit <storyID>",
	Short: "Edit one of your stories",
	Long: `Send a partial update for a story. Only the flags you set are
changed; unset fields keep their current values.

The story must be reachable in the feed (the first ten pages are
searched).

Examples:
  snoozectl edit abc-123 --title "Better title"
  snoozectl edit abc-123 --url https://example.com/moved --author alice`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("title", "", "new story title")
	editCmd.Flags().String("author", "", "new story author byline")
	editCmd.Flags().String("url", "", "new story URL")
}

func runEdit(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	storyID := args[0]
	fields := api.StoryFields{}
	if cmd.Flags().Changed("title") {
		fields.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("author") {
		fields.Author, _ = cmd.Flags().GetString("author")
	}
	if cmd.Flags().Changed("url") {
		fields.URL, _ = cmd.Flags().GetString("url")
	}
	if fields == (api.StoryFields{}) {
		return &output.CLIError{
			Summary:    "nothing to change",
			Suggestion: "set at least one of --title, --author, --url",
			ExitCode:   output.ExitUsageError,
		}
	}

	list, err := story.FetchPages(cmd.Context(), apiClient, 0, searchPages)
	if err != nil {
		return output.WrapAPIError("fetching feed", err)
	}

	st, err := list.Edit(cmd.Context(), user, storyID, fields)
	if err != nil {
		if errors.Is(err, story.ErrNotFound) {
			return &output.CLIError{
				Summary:    fmt.Sprintf("story %s not found", storyID),
				Detail:     fmt.Sprintf("not in the first %d pages of the feed", searchPages),
				Suggestion: "check the ID with 'snoozectl mine'",
				ExitCode:   output.ExitNotFound,
				Err:        err,
			}
		}
		return output.WrapAPIError("editing story", err)
	}

	printer := newPrinter()
	printer.Success("updated %q (%s)", st.Title, st.ID)
	printer.PrintHints("edit")
	return nil
}
