package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/keycloak"
	"github.com/jtitra/labkit/pkg/password"
)

var (
	kcUserEmail    string
	kcUserName     string
	kcUserPassword string
)

var keycloakCmd = &cobra.Command{
	Use:   "keycloak",
	Short: "Manage workshop users in Keycloak",
}

var keycloakUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage realm users",
}

var keycloakUserCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a realm user",
	Long: `Create provisions an enabled, pre-verified user whose username is the
email address. When --password is omitted a random one is generated
and printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newKeycloakClient()
		if err != nil {
			return err
		}
		token, err := keycloakAdminToken(cmd, client)
		if err != nil {
			return err
		}

		pw := kcUserPassword
		if pw == "" {
			pw, err = password.Generate(12)
			if err != nil {
				return err
			}
		}

		user := keycloak.User{Email: kcUserEmail, FirstName: kcUserName, Password: pw}
		if err := client.CreateUser(cmd.Context(), token, keycloakRealm, user); err != nil {
			return err
		}

		printResult(map[string]string{"email": kcUserEmail, "password": pw}, func() {
			fmt.Printf("Created user '%s' with password '%s'.\n", kcUserEmail, pw)
		})
		return nil
	},
}

var keycloakUserDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a realm user by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newKeycloakClient()
		if err != nil {
			return err
		}
		token, err := keycloakAdminToken(cmd, client)
		if err != nil {
			return err
		}
		if err := client.DeleteUser(cmd.Context(), token, keycloakRealm, kcUserEmail); err != nil {
			return err
		}
		printResult(map[string]string{"email": kcUserEmail}, func() {
			fmt.Printf("Deleted user '%s'.\n", kcUserEmail)
		})
		return nil
	},
}

var keycloakTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch an admin access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newKeycloakClient()
		if err != nil {
			return err
		}
		user, err := flagOrEnv(keycloakAdminUser, "KEYCLOAK_ADMIN_USER", "Keycloak admin user")
		if err != nil {
			return err
		}
		pw, err := flagOrEnv(keycloakAdminPassword, "KEYCLOAK_ADMIN_PASSWORD", "Keycloak admin password")
		if err != nil {
			return err
		}

		token, err := client.Token(cmd.Context(), user, pw)
		if err != nil {
			return err
		}

		out := map[string]any{"accessToken": token.AccessToken}
		if expiry, err := token.Expiry(); err == nil {
			out["expiresAt"] = expiry
		}
		printResult(out, func() {
			fmt.Println(token.AccessToken)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keycloakCmd)
	keycloakCmd.AddCommand(keycloakUserCmd)
	keycloakCmd.AddCommand(keycloakTokenCmd)
	keycloakUserCmd.AddCommand(keycloakUserCreateCmd)
	keycloakUserCmd.AddCommand(keycloakUserDeleteCmd)

	registerKeycloakFlags(keycloakCmd)

	keycloakUserCreateCmd.Flags().StringVar(&kcUserEmail, "email", "", "email address, used as the username (required)")
	keycloakUserCreateCmd.Flags().StringVar(&kcUserName, "name", "", "first name shown in rosters")
	keycloakUserCreateCmd.Flags().StringVar(&kcUserPassword, "password", "", "password (default: generated)")
	keycloakUserCreateCmd.MarkFlagRequired("email")

	keycloakUserDeleteCmd.Flags().StringVar(&kcUserEmail, "email", "", "email address of the user to delete (required)")
	keycloakUserDeleteCmd.MarkFlagRequired("email")
}
