package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/password"
	"github.com/jtitra/labkit/pkg/servicenow"
)

var (
	snowFirstName    string
	snowLastName     string
	snowUserName     string
	snowEmail        string
	snowUserPassword string
	snowSysID        string
	snowGroup        string
)

var snowCmd = &cobra.Command{
	Use:   "snow",
	Short: "Manage workshop users in ServiceNow",
}

var snowUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage sys_user records",
}

var snowUserCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sys_user record",
	Long: `Create inserts a user and prints its sys_id, which delete and
add-to-group take as input. When --password is omitted a random one is
generated and printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSnowClient()
		if err != nil {
			return err
		}

		pw := snowUserPassword
		if pw == "" {
			pw, err = password.Generate(12)
			if err != nil {
				return err
			}
		}

		sysID, err := client.CreateUser(cmd.Context(), servicenow.User{
			FirstName: snowFirstName,
			LastName:  snowLastName,
			UserName:  snowUserName,
			Email:     snowEmail,
			Password:  pw,
		})
		if err != nil {
			return err
		}

		printResult(map[string]string{"sysId": sysID, "userName": snowUserName, "password": pw}, func() {
			fmt.Printf("Created user '%s' with sys_id '%s' and password '%s'.\n", snowUserName, sysID, pw)
		})
		return nil
	},
}

var snowUserDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a sys_user record",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSnowClient()
		if err != nil {
			return err
		}
		if err := client.DeleteUser(cmd.Context(), snowSysID); err != nil {
			return err
		}
		printResult(map[string]string{"sysId": snowSysID}, func() {
			fmt.Printf("Deleted user '%s'.\n", snowSysID)
		})
		return nil
	},
}

var snowUserAddToGroupCmd = &cobra.Command{
	Use:   "add-to-group",
	Short: "Add a user to a group",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSnowClient()
		if err != nil {
			return err
		}
		membershipID, err := client.AddUserToGroup(cmd.Context(), snowSysID, snowGroup)
		if err != nil {
			return err
		}
		group := snowGroup
		if group == "" {
			group = servicenow.DefaultGroup
		}
		printResult(map[string]string{"sysId": snowSysID, "group": group, "membershipId": membershipID}, func() {
			fmt.Printf("Added user '%s' to group '%s'.\n", snowSysID, group)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snowCmd)
	snowCmd.AddCommand(snowUserCmd)
	snowUserCmd.AddCommand(snowUserCreateCmd)
	snowUserCmd.AddCommand(snowUserDeleteCmd)
	snowUserCmd.AddCommand(snowUserAddToGroupCmd)

	registerSnowFlags(snowCmd)

	snowUserCreateCmd.Flags().StringVar(&snowFirstName, "first-name", "", "first name (required)")
	snowUserCreateCmd.Flags().StringVar(&snowLastName, "last-name", "", "last name (required)")
	snowUserCreateCmd.Flags().StringVar(&snowUserName, "user-name", "", "login name (required)")
	snowUserCreateCmd.Flags().StringVar(&snowEmail, "email", "", "email address (required)")
	snowUserCreateCmd.Flags().StringVar(&snowUserPassword, "user-password", "", "password (default: generated)")
	snowUserCreateCmd.MarkFlagRequired("first-name")
	snowUserCreateCmd.MarkFlagRequired("last-name")
	snowUserCreateCmd.MarkFlagRequired("user-name")
	snowUserCreateCmd.MarkFlagRequired("email")

	snowUserDeleteCmd.Flags().StringVar(&snowSysID, "sys-id", "", "sys_id of the user to delete (required)")
	snowUserDeleteCmd.MarkFlagRequired("sys-id")

	snowUserAddToGroupCmd.Flags().StringVar(&snowSysID, "sys-id", "", "sys_id of the user (required)")
	snowUserAddToGroupCmd.Flags().StringVar(&snowGroup, "group", "", "group name (default: the workshop group)")
	snowUserAddToGroupCmd.MarkFlagRequired("sys-id")
}
