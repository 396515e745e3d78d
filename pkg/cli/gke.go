package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/gke"
)

var (
	gkeEndpoint string
	gkeUser     string
	gkeRole     string
	gkeOut      string
)

var gkeCmd = &cobra.Command{
	Use:   "gke",
	Short: "Mint and revoke per-student cluster credentials",
	Long: `Gke talks to the credential generator that fronts a shared GKE
cluster, minting a kubeconfig per student and revoking it when the
workshop ends.`,
}

func newGKEClient() (*gke.Client, error) {
	endpoint, err := flagOrEnv(gkeEndpoint, "GKE_GENERATOR_URL", "generator URL")
	if err != nil {
		return nil, err
	}
	return gke.New(endpoint)
}

var gkeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a cluster user and fetch their kubeconfig",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGKEClient()
		if err != nil {
			return err
		}
		if gkeOut != "" {
			if err := client.WriteCredentials(cmd.Context(), gkeUser, gkeRole, gkeOut); err != nil {
				return err
			}
			printResult(map[string]string{"user": gkeUser, "kubeconfig": gkeOut}, func() {
				fmt.Printf("Wrote kubeconfig for '%s' to %s.\n", gkeUser, gkeOut)
			})
			return nil
		}

		kubeconfig, err := client.CreateUser(cmd.Context(), gkeUser, gkeRole)
		if err != nil {
			return err
		}
		return writeOutput("", kubeconfig, 0o600)
	},
}

var gkeRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke a cluster user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGKEClient()
		if err != nil {
			return err
		}
		if err := client.RevokeUser(cmd.Context(), gkeUser); err != nil {
			return err
		}
		printResult(map[string]string{"user": gkeUser}, func() {
			fmt.Printf("Revoked '%s'.\n", gkeUser)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gkeCmd)
	gkeCmd.AddCommand(gkeCreateCmd)
	gkeCmd.AddCommand(gkeRevokeCmd)

	gkeCmd.PersistentFlags().StringVar(&gkeEndpoint, "endpoint", "", "credential generator URL (env GKE_GENERATOR_URL)")

	gkeCreateCmd.Flags().StringVar(&gkeUser, "user", "", "username to create (required)")
	gkeCreateCmd.Flags().StringVar(&gkeRole, "role", "admin", "role bound to the user")
	gkeCreateCmd.Flags().StringVar(&gkeOut, "out", "", "write the kubeconfig to this file instead of stdout")
	gkeCreateCmd.MarkFlagRequired("user")

	gkeRevokeCmd.Flags().StringVar(&gkeUser, "user", "", "username to revoke (required)")
	gkeRevokeCmd.MarkFlagRequired("user")
}
