package cmd

import (
	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/story"
)

var removeCmd = &cobra.Command{
	Use:     "remove <storyID>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete one of your stories",
	Long: `Delete a story by ID. The delete is forwarded to the server even
when the story is not visible in the locally fetched feed.

Examples:
  snoozectl remove abc-123
  snoozectl rm abc-123`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}
	storyID := args[0]

	list, err := story.FetchPage(cmd.Context(), apiClient, 0)
	if err != nil {
		return output.WrapAPIError("fetching feed", err)
	}

	if err := list.Remove(cmd.Context(), user, storyID); err != nil {
		return output.WrapAPIError("deleting story", err)
	}

	printer := newPrinter()
	printer.Success("deleted story %s", storyID)
	printer.PrintHints("remove")
	return nil
}
