package cli

import (
	"github.com/spf13/cobra"
)

var (
	delegateOrgID  string
	delegateProjID string
	delegateName   string
	delegateOut    string
)

var delegateCmd = &cobra.Command{
	Use:   "delegate",
	Short: "Manage Harness delegates",
}

var delegateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a Kubernetes delegate",
	Long: `Create registers a project-level Kubernetes delegate and writes its
install manifest to --out, or stdout when --out is omitted. Apply the
manifest with 'labctl k8s apply'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		manifest, err := client.CreateDelegate(cmd.Context(), delegateOrgID, delegateProjID, delegateName)
		if err != nil {
			return err
		}
		return writeOutput(delegateOut, manifest, 0o644)
	},
}

func init() {
	rootCmd.AddCommand(delegateCmd)
	delegateCmd.AddCommand(delegateCreateCmd)

	registerHarnessFlags(delegateCmd)
	delegateCreateCmd.Flags().StringVar(&delegateOrgID, "org", "", "organization identifier (required)")
	delegateCreateCmd.Flags().StringVar(&delegateProjID, "project", "", "project identifier (required)")
	delegateCreateCmd.Flags().StringVar(&delegateName, "name", "", "delegate name (required)")
	delegateCreateCmd.Flags().StringVar(&delegateOut, "out", "", "write the manifest to this file instead of stdout")
	delegateCreateCmd.MarkFlagRequired("org")
	delegateCreateCmd.MarkFlagRequired("project")
	delegateCreateCmd.MarkFlagRequired("name")
}
