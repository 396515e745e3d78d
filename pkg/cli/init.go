package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jtitra/labkit/pkg/cli/internal/parse"
	"github.com/jtitra/labkit/pkg/workshop"
)

var (
	initOut   string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a lab definition interactively",
	Long: `Init asks for the workshop's platform coordinates and student roster
and writes a lab definition file. Checks start empty; add them by
hand once the lab content exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !initForce {
			if _, err := os.Stat(initOut); err == nil {
				return fmt.Errorf("%s already exists, use --force to overwrite", initOut)
			}
		}

		var accountID, orgID, projectID, endpoint, emails string
		realm := "master"

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Harness account ID").
					Placeholder("wlgELJ0TTre5aZhzpt8gVA").
					Value(&accountID).
					Validate(func(s string) error {
						if s == "" {
							return errors.New("account ID is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Organization identifier").
					Value(&orgID),
				huh.NewInput().
					Title("Project identifier").
					Value(&projectID),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Keycloak endpoint (empty to skip SSO)").
					Placeholder("https://sso.lab.example.com").
					Value(&endpoint),
				huh.NewInput().
					Title("Keycloak realm").
					Value(&realm),
			),
			huh.NewGroup(
				huh.NewText().
					Title("Student emails, one per line").
					Value(&emails),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}

		cfg := workshop.Config{
			Version:  "1",
			Harness:  workshop.Harness{AccountID: accountID, OrgID: orgID, ProjectID: projectID},
			Keycloak: workshop.Keycloak{Endpoint: endpoint, Realm: realm},
		}
		for _, email := range parse.SplitTrim(emails, "\n") {
			name, _, _ := strings.Cut(email, "@")
			cfg.Users = append(cfg.Users, workshop.User{Email: email, Name: name})
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile(initOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", initOut, err)
		}

		printResult(map[string]any{"path": initOut, "users": len(cfg.Users)}, func() {
			fmt.Printf("Wrote %s with %d user(s).\n", initOut, len(cfg.Users))
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initOut, "out", "labkit.yaml", "where to write the definition")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
}
