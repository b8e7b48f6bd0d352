package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/session"
	"github.com/snooze-project/snoozectl/internal/story"
)

var storiesCmd = &cobra.Command{
	Use:     "stories",
	Aliases: []string{"feed"},
	Short:   "Show the story feed",
	Long: `Show the paginated story feed, ten stories per page.

Pages are addressed by a zero-based skip offset. With --pages several
consecutive pages are fetched concurrently and shown in order. When a
session is cached, favorites are marked.

Examples:
  snoozectl stories                 # First page
  snoozectl stories --skip 10       # Second page
  snoozectl stories --pages 3       # First three pages
  snoozectl stories --json          # Output as JSON`,
	RunE: runStories,
}

func init() {
	rootCmd.AddCommand(storiesCmd)

	storiesCmd.Flags().Int("skip", 0, "zero-based offset into the feed")
	storiesCmd.Flags().Int("pages", 1, "number of consecutive pages to fetch")
	storiesCmd.Flags().Bool("json", false, "output as JSON")
}

func runStories(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetInt("skip")
	pages, _ := cmd.Flags().GetInt("pages")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if skip < 0 {
		return &output.CLIError{
			Summary:  fmt.Sprintf("invalid --skip %d", skip),
			Detail:   "the feed offset cannot be negative",
			ExitCode: output.ExitUsageError,
		}
	}

	list, err := story.FetchPages(cmd.Context(), apiClient, skip, pages)
	if err != nil {
		return output.WrapAPIError("fetching stories", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(list.Stories())
	}

	// Favorites marking is best-effort; an anonymous session is fine.
	user, _ := sessions.Restore(cmd.Context())

	printer := newPrinter()
	renderStoryTable(printer, list.Stories(), user)
	printer.Info("%d stories (skip %d)", list.Len(), skip)
	printer.PrintHints("stories")
	return nil
}

// renderStoryTable prints stories the way the feed page showed them:
// favorite mark, title, host, author and poster.
func renderStoryTable(printer *output.Printer, stories []story.Story, user *session.User) {
	table := output.NewQuietTable([]string{"", "ID", "TITLE", "HOST", "AUTHOR", "POSTED BY", "AGE"}, printer.IsQuiet())
	for _, st := range stories {
		favorite := user != nil && user.IsFavorite(st.ID)
		table.AddRow([]string{
			printer.FavoriteMark(favorite),
			st.ID,
			printer.Bold(st.Title),
			printer.Dim(st.HostName()),
			st.Author,
			st.Username,
			formatAge(st.CreatedAt),
		})
	}
	table.Render()
}

// formatAge renders a story timestamp as a coarse relative age.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
