package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/internal/id"
)

var (
	projectOrgID  string
	projectName   string
	projectID     string
	projectUnique bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage Harness projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Long: `Create makes a project under the given organization. The project
identifier is derived from the name the same way the platform UI
does, and is printed for use in later calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		name := projectName
		if projectUnique {
			name = fmt.Sprintf("%s-%s", name, id.Suffix(5))
		}
		identifier, err := client.CreateProject(cmd.Context(), projectOrgID, name)
		if err != nil {
			return err
		}
		printResult(map[string]string{"name": name, "identifier": identifier}, func() {
			fmt.Printf("Created project '%s' with identifier '%s'.\n", name, identifier)
		})
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		if err := client.DeleteProject(cmd.Context(), projectOrgID, projectID); err != nil {
			return err
		}
		printResult(map[string]string{"identifier": projectID}, func() {
			fmt.Printf("Deleted project '%s'.\n", projectID)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	registerHarnessFlags(projectCmd)
	projectCmd.PersistentFlags().StringVar(&projectOrgID, "org", "", "organization identifier (required)")
	projectCmd.MarkPersistentFlagRequired("org")

	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "project name (required)")
	projectCreateCmd.Flags().BoolVar(&projectUnique, "unique", false, "append a random suffix so reruns get fresh projects")
	projectCreateCmd.MarkFlagRequired("name")

	projectDeleteCmd.Flags().StringVar(&projectID, "project", "", "project identifier (required)")
	projectDeleteCmd.MarkFlagRequired("project")
}
