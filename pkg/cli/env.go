package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/chaos"
	"github.com/jtitra/labkit/pkg/harness"
	"github.com/jtitra/labkit/pkg/keycloak"
	"github.com/jtitra/labkit/pkg/servicenow"
)

// Shared credential flags. Each command group registers the ones it
// needs; only one command path runs per invocation.
var (
	harnessAccountID string
	harnessAPIKey    string
	harnessBaseURL   string

	chaosOrgID     string
	chaosProjectID string

	keycloakEndpoint      string
	keycloakRealm         string
	keycloakAdminUser     string
	keycloakAdminPassword string

	snowInstance string
	snowUsername string
	snowPassword string
)

// flagOrEnv resolves a credential from its flag, then the environment.
func flagOrEnv(flagValue, envKey, what string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envKey); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("missing %s: pass the flag or set %s", what, envKey)
}

func newHarnessClient() (*harness.Client, error) {
	accountID, err := flagOrEnv(harnessAccountID, "HARNESS_ACCOUNT_ID", "Harness account ID")
	if err != nil {
		return nil, err
	}
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

func newChaosClient() (*chaos.Client, error) {
	accountID, err := flagOrEnv(harnessAccountID, "HARNESS_ACCOUNT_ID", "Harness account ID")
	if err != nil {
		return nil, err
	}
	apiKey, err := flagOrEnv(harnessAPIKey, "HARNESS_API_KEY", "Harness API key")
	if err != nil {
		return nil, err
	}

	var opts []chaos.Option
	if harnessBaseURL != "" {
		opts = append(opts, chaos.WithBaseURL(harnessBaseURL))
	}
	return chaos.New(accountID, apiKey, opts...)
}

func chaosScope() chaos.Scope {
	return chaos.Scope{OrgID: chaosOrgID, ProjectID: chaosProjectID}
}

func newKeycloakClient() (*keycloak.Client, error) {
	endpoint, err := flagOrEnv(keycloakEndpoint, "KEYCLOAK_ENDPOINT", "Keycloak endpoint")
	if err != nil {
		return nil, err
	}
	return keycloak.New(endpoint)
}

// keycloakAdminToken logs in as the Keycloak admin and returns the
// access token.
func keycloakAdminToken(cmd *cobra.Command, client *keycloak.Client) (string, error) {
	user, err := flagOrEnv(keycloakAdminUser, "KEYCLOAK_ADMIN_USER", "Keycloak admin user")
	if err != nil {
		return "", err
	}
	password, err := flagOrEnv(keycloakAdminPassword, "KEYCLOAK_ADMIN_PASSWORD", "Keycloak admin password")
	if err != nil {
		return "", err
	}

	token, err := client.Token(cmd.Context(), user, password)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func newSnowClient() (*servicenow.Client, error) {
	instance, err := flagOrEnv(snowInstance, "SNOW_INSTANCE", "ServiceNow instance")
	if err != nil {
		return nil, err
	}
	username, err := flagOrEnv(snowUsername, "SNOW_USERNAME", "ServiceNow username")
	if err != nil {
		return nil, err
	}
	password, err := flagOrEnv(snowPassword, "SNOW_PASSWORD", "ServiceNow password")
	if err != nil {
		return nil, err
	}
	return servicenow.New(instance, username, password)
}

// registerHarnessFlags attaches the Harness credential flags to a
// command group.
func registerHarnessFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&harnessAccountID, "account-id", "", "Harness account ID (env HARNESS_ACCOUNT_ID)")
	cmd.PersistentFlags().StringVar(&harnessAPIKey, "api-key", "", "Harness API key (env HARNESS_API_KEY)")
	cmd.PersistentFlags().StringVar(&harnessBaseURL, "base-url", "", "Harness base URL (default https://app.harness.io)")
}

func registerKeycloakFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&keycloakEndpoint, "endpoint", "", "Keycloak base URL (env KEYCLOAK_ENDPOINT)")
	cmd.PersistentFlags().StringVar(&keycloakRealm, "realm", "master", "Keycloak realm")
	cmd.PersistentFlags().StringVar(&keycloakAdminUser, "admin-user", "", "Keycloak admin username (env KEYCLOAK_ADMIN_USER)")
	cmd.PersistentFlags().StringVar(&keycloakAdminPassword, "admin-password", "", "Keycloak admin password (env KEYCLOAK_ADMIN_PASSWORD)")
}

func registerSnowFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&snowInstance, "instance", "", "ServiceNow instance name (env SNOW_INSTANCE)")
	cmd.PersistentFlags().StringVar(&snowUsername, "username", "", "ServiceNow API username (env SNOW_USERNAME)")
	cmd.PersistentFlags().StringVar(&snowPassword, "password", "", "ServiceNow API password (env SNOW_PASSWORD)")
}
