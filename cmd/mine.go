package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your own stories",
	Long: `Show the stories authored by the logged-in account.

Examples:
  snoozectl mine
  snoozectl mine --json`,
	RunE: runMine,
}

func init() {
	rootCmd.AddCommand(mineCmd)

	mineCmd.Flags().Bool("json", false, "output as JSON")
}

func runMine(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(user.OwnStories)
	}

	printer := newPrinter()
	if len(user.OwnStories) == 0 {
		printer.Info("no stories submitted yet")
		printer.PrintHints("mine")
		return nil
	}

	renderStoryTable(printer, user.OwnStories, user)
	printer.Info("%d stories by %s", len(user.OwnStories), user.Username)
	printer.PrintHints("mine")
	return nil
}
