package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and cache the session",
	Long: `Log in to the story service with an existing account.

On success the issued token and username are cached in the session file,
so later commands authenticate automatically.

Examples:
  snoozectl login -u alice -p secret
  SNOOZECTL_PASSWORD=secret snoozectl login -u alice`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "account username")
	loginCmd.Flags().StringP("password", "p", "", "account password (or SNOOZECTL_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("username")
}

func runLogin(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	username, _ := cmd.Flags().GetString("username")
	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	user, err := sessions.Login(cmd.Context(), username, password)
	if err != nil {
		// No user on rejection; the server's message rides on the error.
		return output.WrapAPIError("login", err)
	}

	printer.Success("logged in as %s (%s)", user.Username, user.Name)
	printer.Info("%d favorites, %d stories", len(user.Favorites), len(user.OwnStories))
	printer.PrintHints("login")
	return nil
}

// resolvePassword takes the password from the flag or, when unset, from
// the SNOOZECTL_PASSWORD environment variable.
func resolvePassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = passwordFromEnv()
	}
	if password == "" {
		return "", &output.CLIError{
			Summary:    "no password given",
			Suggestion: "pass --password or set SNOOZECTL_PASSWORD",
			ExitCode:   output.ExitUsageError,
		}
	}
	return password, nil
}

func passwordFromEnv() string {
	return os.Getenv("SNOOZECTL_PASSWORD")
}
