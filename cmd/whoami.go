package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Long: `Show the account behind the cached session, restored by asking the
server for the profile with the cached token.

Examples:
  snoozectl whoami
  snoozectl whoami --json`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		info := map[string]any{
			"username":   user.Username,
			"name":       user.Name,
			"createdAt":  user.CreatedAt.Format(time.RFC3339),
			"favorites":  len(user.Favorites),
			"ownStories": len(user.OwnStories),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	printer := newPrinter()
	printer.Print("%s (%s)", printer.Bold(user.Username), user.Name)
	printer.Print("  member since: %s", user.CreatedAt.Format("2006-01-02"))
	printer.Print("  favorites:    %d", len(user.Favorites))
	printer.Print("  own stories:  %d", len(user.OwnStories))
	return nil
}
