package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/instruqt"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Talk to the lab sandbox agent",
	Long: `Agent wraps the sandbox tooling available inside lab VMs: track
variables shared between challenge scripts, and the fail-message hook
that shows feedback when a check fails.`,
}

var agentGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a track variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := instruqt.New().GetVariable(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(map[string]string{"name": args[0], "value": value}, func() {
			fmt.Println(value)
		})
		return nil
	},
}

var agentSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Store a track variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := instruqt.New().SetVariable(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printResult(map[string]string{"name": args[0], "value": args[1]}, func() {
			fmt.Printf("Set '%s'.\n", args[0])
		})
		return nil
	},
}

var agentFailCmd = &cobra.Command{
	Use:   "fail <message>",
	Short: "Raise a check failure with a message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return instruqt.New().FailCheck(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.AddCommand(agentGetCmd)
	agentCmd.AddCommand(agentSetCmd)
	agentCmd.AddCommand(agentFailCmd)
}
