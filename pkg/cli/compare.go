package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/configtree"
)

// compareOutput is the JSON shape of a comparison result.
type compareOutput struct {
	OK         bool     `json:"ok"`
	Mismatches []string `json:"mismatches"`
}

var compareCmd = &cobra.Command{
	Use:   "compare <expected> <actual>",
	Short: "Compare an expected configuration tree against an actual one",
	Long: `Compare checks that every key, list item and value in the expected
document is present in the actual document. Extra keys in the actual
document are fine; anything missing or different is reported.

Documents may be YAML or JSON files, or '-' to read one side from
stdin. Exits non-zero when mismatches are found.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, err := loadTree(args[0])
		if err != nil {
			return fmt.Errorf("expected document: %w", err)
		}
		actual, err := loadTree(args[1])
		if err != nil {
			return fmt.Errorf("actual document: %w", err)
		}

		rep := configtree.Compare(expected, actual)

		printResult(compareOutput{OK: rep.OK(), Mismatches: rep.Messages()}, func() {
			if rep.OK() {
				fmt.Println("Configuration matches.")
				return
			}
			for _, msg := range rep.Messages() {
				fmt.Println(msg)
			}
		})

		if !rep.OK() {
			return fmt.Errorf("%d mismatch(es) found", len(rep))
		}
		return nil
	},
}

// loadTree reads a document from a file or stdin ('-') and parses it.
// JSON files go through the JSON parser; everything else, stdin
// included, parses as YAML, which accepts JSON documents too.
func loadTree(path string) (*configtree.Value, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return configtree.ParseYAML(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".json" {
		return configtree.ParseJSON(data)
	}
	return configtree.ParseYAML(data)
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
