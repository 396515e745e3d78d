package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyLoginUser string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify platform state",
}

var verifyLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify that a user has logged in to the platform",
	Long: `Login scans today's audit events for a LOGIN action by the given
user. Exits non-zero when no login is found, so lab checks can gate
on it directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		found, err := client.VerifyUserLogin(cmd.Context(), verifyLoginUser)
		if err != nil {
			return err
		}

		printResult(map[string]any{"user": verifyLoginUser, "loggedIn": found}, func() {
			if found {
				fmt.Printf("User '%s' has logged in.\n", verifyLoginUser)
			} else {
				fmt.Printf("No login found for user '%s'.\n", verifyLoginUser)
			}
		})

		if !found {
			return fmt.Errorf("no login found for user %q", verifyLoginUser)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(verifyLoginCmd)

	registerHarnessFlags(verifyCmd)
	verifyLoginCmd.Flags().StringVar(&verifyLoginUser, "user", "", "user name to look for (required)")
	verifyLoginCmd.MarkFlagRequired("user")
}
