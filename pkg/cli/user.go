package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	userOrgID     string
	userProjectID string
	userEmail     string
	userNoRetry   bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage Harness users",
}

var userInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Invite a user to a project",
	Long: `Invite sends a project invite for the given email address. Freshly
created projects can briefly reject invites, so the invite retries on
failure; --no-retry sends exactly one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}

		if userNoRetry {
			status, err := client.InviteUserToProject(cmd.Context(), userOrgID, userProjectID, userEmail)
			if err != nil {
				return err
			}
			printResult(map[string]string{"email": userEmail, "status": status}, func() {
				fmt.Printf("Invited '%s': %s\n", userEmail, status)
			})
			return nil
		}

		if err := client.InviteUserToProjectRetry(cmd.Context(), userOrgID, userProjectID, userEmail); err != nil {
			return err
		}
		printResult(map[string]string{"email": userEmail}, func() {
			fmt.Printf("Invited '%s'.\n", userEmail)
		})
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user from the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		if err := client.DeleteUserByEmail(cmd.Context(), userEmail); err != nil {
			return err
		}
		printResult(map[string]string{"email": userEmail}, func() {
			fmt.Printf("Deleted user '%s'.\n", userEmail)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userInviteCmd)
	userCmd.AddCommand(userDeleteCmd)

	registerHarnessFlags(userCmd)

	userInviteCmd.Flags().StringVar(&userOrgID, "org", "", "organization identifier (required)")
	userInviteCmd.Flags().StringVar(&userProjectID, "project", "", "project identifier (required)")
	userInviteCmd.Flags().StringVar(&userEmail, "email", "", "email address to invite (required)")
	userInviteCmd.Flags().BoolVar(&userNoRetry, "no-retry", false, "send a single invite without retrying")
	userInviteCmd.MarkFlagRequired("org")
	userInviteCmd.MarkFlagRequired("project")
	userInviteCmd.MarkFlagRequired("email")

	userDeleteCmd.Flags().StringVar(&userEmail, "email", "", "email address of the user to delete (required)")
	userDeleteCmd.MarkFlagRequired("email")
}
