package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/cli/internal/output"
	"github.com/jtitra/labkit/pkg/harness"
	"github.com/jtitra/labkit/pkg/keycloak"
	"github.com/jtitra/labkit/pkg/workshop"
)

var cleanupConfigPath string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Tear down everything a lab definition provisioned",
	Long: `Cleanup deletes the users and project named in the lab definition
from every system it mentions. Failures are reported and collected,
not fatal: one missing user must not leave the rest of the lab
behind.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := workshop.Load(cleanupConfigPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var errs *multierror.Error

		if cfg.Harness.AccountID != "" {
			client, err := harnessClientForAccount(cfg.Harness.AccountID)
			if err != nil {
				errs = multierror.Append(errs, err)
			} else {
				for _, u := range cfg.Users {
					if err := client.DeleteUserByEmail(ctx, u.Email); err != nil {
						output.Warn("harness user %s: %v", u.Email, err)
						errs = multierror.Append(errs, fmt.Errorf("harness user %s: %w", u.Email, err))
					}
				}
				if cfg.Harness.ProjectID != "" {
					if err := client.DeleteProject(ctx, cfg.Harness.OrgID, cfg.Harness.ProjectID); err != nil {
						output.Warn("harness project %s: %v", cfg.Harness.ProjectID, err)
						errs = multierror.Append(errs, fmt.Errorf("harness project %s: %w", cfg.Harness.ProjectID, err))
					}
				}
			}
		}

		if cfg.Keycloak.Endpoint != "" {
			errs = multierror.Append(errs, cleanupKeycloak(cmd, cfg)...)
		}

		if err := errs.ErrorOrNil(); err != nil {
			return err
		}
		printResult(map[string]any{"users": len(cfg.Users)}, func() {
			fmt.Println("Cleanup complete.")
		})
		return nil
	},
}

// harnessClientForAccount builds a client for the account named in the
// lab definition; only the API key comes from flags or the environment.
func harnessClientForAccount(accountID string) (*harness.Client, error) {
	apiKey, err := flagOrEnv(harnessAPIKey, "HARNESS_API_KEY", "Harness API key")
	if err != nil {
		return nil, err
	}
	var opts []harness.Option
	if harnessBaseURL != "" {
		opts = append(opts, harness.WithBaseURL(harnessBaseURL))
	}
	return harness.New(accountID, apiKey, opts...)
}

func cleanupKeycloak(cmd *cobra.Command, cfg *workshop.Config) []error {
	client, err := keycloak.New(cfg.Keycloak.Endpoint)
	if err != nil {
		return []error{err}
	}
	token, err := keycloakAdminToken(cmd, client)
	if err != nil {
		return []error{err}
	}

	realm := cfg.Keycloak.Realm
	if realm == "" {
		realm = "master"
	}
	var errs []error
	for _, u := range cfg.Users {
		if err := client.DeleteUser(cmd.Context(), token, realm, u.Email); err != nil {
			output.Warn("keycloak user %s: %v", u.Email, err)
			errs = append(errs, fmt.Errorf("keycloak user %s: %w", u.Email, err))
		}
	}
	return errs
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	registerHarnessFlags(cleanupCmd)
	cleanupCmd.Flags().StringVar(&cleanupConfigPath, "config", "labkit.yaml", "lab definition file")
	cleanupCmd.Flags().StringVar(&keycloakAdminUser, "admin-user", "", "Keycloak admin username (env KEYCLOAK_ADMIN_USER)")
	cleanupCmd.Flags().StringVar(&keycloakAdminPassword, "admin-password", "", "Keycloak admin password (env KEYCLOAK_ADMIN_PASSWORD)")
}
