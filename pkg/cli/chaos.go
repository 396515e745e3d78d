package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jtitra/labkit/pkg/cli/internal/output"
	"github.com/jtitra/labkit/pkg/cli/internal/parse"
)

var (
	chaosInfraName string
	chaosEnvID     string
	chaosSet       []string
	chaosOut       string
)

var chaosCmd = &cobra.Command{
	Use:   "chaos",
	Short: "Manage chaos engineering infrastructure",
}

// typedValues parses repeated key=value pairs, reading each value as a
// YAML scalar so "enabled=false" arrives as a boolean and "count=3" as
// an int. Unparseable values stay strings.
func typedValues(pairs []string) (map[string]any, error) {
	kv, err := parse.KeyValues(pairs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(kv))
	for k, v := range kv {
		var value any
		if err := yaml.Unmarshal([]byte(v), &value); err != nil {
			value = v
		}
		out[k] = value
	}
	return out, nil
}

var chaosRegisterInfraCmd = &cobra.Command{
	Use:   "register-infra",
	Short: "Register a chaos infrastructure",
	Long: `Register-infra registers a Kubernetes chaos infrastructure in the
given environment and writes the installation manifest to --out, or
stdout when --out is omitted. Defaults (namespace, service account,
scope) suit workshop clusters; override them with --set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newChaosClient()
		if err != nil {
			return err
		}
		props, err := typedValues(chaosSet)
		if err != nil {
			return err
		}

		manifest, err := client.RegisterInfra(cmd.Context(), chaosScope(), chaosInfraName, chaosEnvID, props)
		if err != nil {
			return err
		}
		return writeOutput(chaosOut, manifest, 0o644)
	},
}

var chaosAddProbeCmd = &cobra.Command{
	Use:   "add-probe",
	Short: "Add an HTTP probe",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newChaosClient()
		if err != nil {
			return err
		}
		props, err := typedValues(chaosSet)
		if err != nil {
			return err
		}

		if err := client.AddProbe(cmd.Context(), chaosScope(), chaosInfraName, props); err != nil {
			return err
		}
		printResult(map[string]string{"name": chaosInfraName}, func() {
			fmt.Printf("Added probe '%s'.\n", chaosInfraName)
		})
		return nil
	},
}

var chaosListInfraCmd = &cobra.Command{
	Use:   "list-infra",
	Short: "List registered chaos infrastructures",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newChaosClient()
		if err != nil {
			return err
		}
		infras, err := client.ListInfra(cmd.Context(), chaosScope())
		if err != nil {
			return err
		}

		printResult(infras, func() {
			w := output.Table()
			fmt.Fprintln(w, "NAME\tID\tENVIRONMENT\tNAMESPACE\tSCOPE")
			for _, infra := range infras {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					infra.Name, infra.InfraID, infra.EnvironmentID, infra.InfraNamespace, infra.InfraScope)
			}
			w.Flush()
		})
		return nil
	},
}

var chaosManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Download the manifest of a registered infrastructure",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newChaosClient()
		if err != nil {
			return err
		}
		manifest, err := client.InfraManifest(cmd.Context(), chaosScope(), chaosInfraName)
		if err != nil {
			return err
		}
		return writeOutput(chaosOut, manifest, 0o644)
	},
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(chaosCmd)
	chaosCmd.AddCommand(chaosRegisterInfraCmd)
	chaosCmd.AddCommand(chaosAddProbeCmd)
	chaosCmd.AddCommand(chaosListInfraCmd)
	chaosCmd.AddCommand(chaosManifestCmd)

	registerHarnessFlags(chaosCmd)
	chaosCmd.PersistentFlags().StringVar(&chaosOrgID, "org", "", "organization identifier (required)")
	chaosCmd.PersistentFlags().StringVar(&chaosProjectID, "project", "", "project identifier (required)")
	chaosCmd.MarkPersistentFlagRequired("org")
	chaosCmd.MarkPersistentFlagRequired("project")

	chaosRegisterInfraCmd.Flags().StringVar(&chaosInfraName, "name", "", "infrastructure name (required)")
	chaosRegisterInfraCmd.Flags().StringVar(&chaosEnvID, "env", "", "environment identifier (required)")
	chaosRegisterInfraCmd.Flags().StringArrayVar(&chaosSet, "set", nil, "override a registration property (key=value, repeatable)")
	chaosRegisterInfraCmd.Flags().StringVar(&chaosOut, "out", "", "write the manifest to this file instead of stdout")
	chaosRegisterInfraCmd.MarkFlagRequired("name")
	chaosRegisterInfraCmd.MarkFlagRequired("env")

	chaosAddProbeCmd.Flags().StringVar(&chaosInfraName, "name", "", "probe name (required)")
	chaosAddProbeCmd.Flags().StringArrayVar(&chaosSet, "set", nil, "override a probe property (key=value, repeatable)")
	chaosAddProbeCmd.MarkFlagRequired("name")

	chaosManifestCmd.Flags().StringVar(&chaosInfraName, "name", "", "infrastructure name (required)")
	chaosManifestCmd.Flags().StringVar(&chaosOut, "out", "", "write the manifest to this file instead of stdout")
	chaosManifestCmd.MarkFlagRequired("name")
}
