package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/instruqt"
	"github.com/jtitra/labkit/pkg/workshop"
)

var (
	checkConfigPath   string
	checkPipelinePath string
	checkVars         []string
	checkAgentFail    bool
)

// checkOutput is the JSON shape of one check result.
type checkOutput struct {
	Name     string   `json:"name"`
	Skipped  bool     `json:"skipped"`
	OK       bool     `json:"ok"`
	Messages []string `json:"messages,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the checks from a lab definition",
	Long: `Check runs every check in the lab definition against the student's
pipeline document. Checks gated by a false 'when' expression are
skipped. With --agent-fail the first failure is also raised through
the sandbox agent, so the attendee sees it on the check button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := workshop.Load(checkConfigPath)
		if err != nil {
			return err
		}

		var document []byte
		if checkPipelinePath != "" {
			document, err = os.ReadFile(checkPipelinePath)
			if err != nil {
				return fmt.Errorf("failed to read pipeline: %w", err)
			}
		}

		vars, err := typedValues(checkVars)
		if err != nil {
			return err
		}

		results, err := workshop.RunChecks(cfg, document, vars)
		if err != nil {
			return err
		}

		var failed []string
		out := make([]checkOutput, 0, len(results))
		for _, res := range results {
			msgs := res.Messages()
			out = append(out, checkOutput{Name: res.Name, Skipped: res.Skipped, OK: res.OK(), Messages: msgs})
			if !res.OK() {
				failed = append(failed, msgs...)
			}
		}

		printResult(out, func() {
			for _, res := range out {
				switch {
				case res.Skipped:
					fmt.Printf("SKIP %s\n", res.Name)
				case res.OK:
					fmt.Printf("PASS %s\n", res.Name)
				default:
					fmt.Printf("FAIL %s\n", res.Name)
					for _, msg := range res.Messages {
						fmt.Printf("     %s\n", msg)
					}
				}
			}
		})

		if len(failed) > 0 {
			if checkAgentFail {
				if err := instruqt.New().FailCheck(cmd.Context(), strings.Join(failed, "\n")); err != nil {
					logger().Warn("failed to raise check failure", "error", err)
				}
			}
			return fmt.Errorf("%d check failure(s)", len(failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkConfigPath, "config", "labkit.yaml", "lab definition file")
	checkCmd.Flags().StringVar(&checkPipelinePath, "pipeline", "", "pipeline document to check")
	checkCmd.Flags().StringArrayVar(&checkVars, "var", nil, "variable for 'when' expressions (key=value, repeatable)")
	checkCmd.Flags().BoolVar(&checkAgentFail, "agent-fail", false, "raise failures through the sandbox agent")
}
