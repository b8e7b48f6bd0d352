package cmd

import (
	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account and log in",
	Long: `Register a new account with the story service.

On success the new account is logged in and its session cached, exactly
as with 'snoozectl login'.

Examples:
  snoozectl signup -u alice -n "Alice Example" -p secret`,
	RunE: runSignup,
}

func init() {
	rootCmd.AddCommand(signupCmd)

	signupCmd.Flags().StringP("username", "u", "", "new account username")
	signupCmd.Flags().StringP("name", "n", "", "display name")
	signupCmd.Flags().StringP("password", "p", "", "new account password (or SNOOZECTL_PASSWORD)")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("name")
}

func runSignup(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	username, _ := cmd.Flags().GetString("username")
	name, _ := cmd.Flags().GetString("name")
	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	user, err := sessions.Signup(cmd.Context(), username, password, name)
	if err != nil {
		return output.WrapAPIError("signup", err)
	}

	printer.Success("account %s created, logged in as %s", user.Username, user.Name)
	printer.PrintHints("signup")
	return nil
}
