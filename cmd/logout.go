package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached session",
	Long: `Remove the cached session credentials.

The account itself is untouched; only the local token cache is cleared.
Logging out while already logged out is not an error.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	if err := sessions.Logout(); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	printer.Success("logged out")
	printer.PrintHints("logout")
	return nil
}
