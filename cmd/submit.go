package cmd

import (
	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/story"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new story",
	Long: `Submit a new story to the feed. Requires a cached session.

The server assigns the story ID and creation time; the new story lands
at the front of the feed.

Examples:
  snoozectl submit --title "Generics in practice" --author alice --url https://example.com/post`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().String("title", "", "story title")
	submitCmd.Flags().String("author", "", "story author byline")
	submitCmd.Flags().String("url", "", "story URL")
	_ = submitCmd.MarkFlagRequired("title")
	_ = submitCmd.MarkFlagRequired("author")
	_ = submitCmd.MarkFlagRequired("url")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	storyURL, _ := cmd.Flags().GetString("url")

	list, err := story.FetchPage(cmd.Context(), apiClient, 0)
	if err != nil {
		return output.WrapAPIError("fetching feed", err)
	}

	st, err := list.Add(cmd.Context(), user, api.StoryFields{
		Title:  title,
		Author: author,
		URL:    storyURL,
	})
	if err != nil {
		return output.WrapAPIError("submitting story", err)
	}

	printer := newPrinter()
	printer.Success("submitted %q (%s)", st.Title, st.ID)
	printer.Info("host: %s", st.HostName())
	printer.PrintHints("submit")
	return nil
}
