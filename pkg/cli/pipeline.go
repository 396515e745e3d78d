package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/pipeline"
)

var (
	pipelineFile   string
	verifyStage    string
	verifyExpect   string
	verifySteps    bool
	pipelineOrgID  string
	pipelineProjID string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Inspect and manage Harness pipelines",
}

var pipelineVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a pipeline stage against an expected configuration",
	Long: `Verify parses a pipeline YAML and checks the stage named by --stage
against the expected tree in --expect. By default the stage's spec is
checked; with --steps the expected tree is read as a mapping of step
key to required step properties instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(pipelineFile)
		if err != nil {
			return fmt.Errorf("failed to read pipeline: %w", err)
		}
		pl, err := pipeline.Parse(data)
		if err != nil {
			return err
		}
		expect, err := loadTree(verifyExpect)
		if err != nil {
			return fmt.Errorf("expected document: %w", err)
		}

		var msgs []string
		if verifySteps {
			for _, m := range pipeline.ValidateSteps(pl, verifyStage, expect) {
				msgs = append(msgs, m.Message)
			}
		} else {
			msgs = pipeline.ValidateStageConfig(pl, verifyStage, expect).Messages()
		}

		printResult(compareOutput{OK: len(msgs) == 0, Mismatches: msgs}, func() {
			if len(msgs) == 0 {
				fmt.Printf("Stage '%s' matches.\n", verifyStage)
				return
			}
			for _, msg := range msgs {
				fmt.Println(msg)
			}
		})

		if len(msgs) > 0 {
			return fmt.Errorf("%d mismatch(es) found", len(msgs))
		}
		return nil
	},
}

var pipelineCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pipeline from a YAML definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newHarnessClient()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(pipelineFile)
		if err != nil {
			return fmt.Errorf("failed to read pipeline: %w", err)
		}
		pl, err := pipeline.Parse(data)
		if err != nil {
			return err
		}
		if err := client.CreatePipeline(cmd.Context(), pipelineOrgID, pipelineProjID, data); err != nil {
			return err
		}
		printResult(map[string]string{"name": pl.Name, "identifier": pl.Identifier}, func() {
			fmt.Printf("Created pipeline '%s'.\n", pl.Name)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
	pipelineCmd.AddCommand(pipelineVerifyCmd)
	pipelineCmd.AddCommand(pipelineCreateCmd)

	pipelineVerifyCmd.Flags().StringVar(&pipelineFile, "file", "", "pipeline YAML file (required)")
	pipelineVerifyCmd.Flags().StringVar(&verifyStage, "stage", "", "stage identifier to verify (required)")
	pipelineVerifyCmd.Flags().StringVar(&verifyExpect, "expect", "", "expected configuration file, or '-' for stdin (required)")
	pipelineVerifyCmd.Flags().BoolVar(&verifySteps, "steps", false, "treat the expected tree as step expectations")
	pipelineVerifyCmd.MarkFlagRequired("file")
	pipelineVerifyCmd.MarkFlagRequired("stage")
	pipelineVerifyCmd.MarkFlagRequired("expect")

	registerHarnessFlags(pipelineCreateCmd)
	pipelineCreateCmd.Flags().StringVar(&pipelineFile, "file", "", "pipeline YAML file (required)")
	pipelineCreateCmd.Flags().StringVar(&pipelineOrgID, "org", "", "organization identifier (required)")
	pipelineCreateCmd.Flags().StringVar(&pipelineProjID, "project", "", "project identifier (required)")
	pipelineCreateCmd.MarkFlagRequired("file")
	pipelineCreateCmd.MarkFlagRequired("org")
	pipelineCreateCmd.MarkFlagRequired("project")
}
