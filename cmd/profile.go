package cmd

import (
	"github.com/spf13/cobra"

	"github.com/snooze-project/snoozectl/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Show the logged-in profile, or edit it with the 'edit' subcommand.

Examples:
  snoozectl profile
  snoozectl profile edit --name "Alice B. Example"
  snoozectl profile edit --password newsecret`,
	RunE: runWhoami,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long: `Update the display name and/or password of the logged-in account.

Leaving --password unset keeps the current password; the field is then
omitted from the request entirely. The session token stays valid.`,
	RunE: runProfileEdit,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileEditCmd)

	profileCmd.Flags().Bool("json", false, "output as JSON")
	profileEditCmd.Flags().String("name", "", "new display name")
	profileEditCmd.Flags().String("password", "", "new password (unset keeps the current one)")
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	user, err := requireUser(cmd.Context())
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")

	// The update endpoint always wants a name; keep the current one
	// unless the caller changes it.
	if !cmd.Flags().Changed("name") {
		name = user.Name
	}
	if name == "" {
		return &output.CLIError{
			Summary:    "nothing to change",
			Suggestion: "set --name and/or --password",
			ExitCode:   output.ExitUsageError,
		}
	}

	updated, err := sessions.EditInfo(cmd.Context(), name, password)
	if err != nil {
		return output.WrapAPIError("updating profile", err)
	}

	printer := newPrinter()
	printer.Success("profile updated: %s (%s)", updated.Username, updated.Name)
	if password != "" {
		printer.Info("password changed")
	}
	return nil
}
