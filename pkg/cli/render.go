package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtitra/labkit/pkg/cli/internal/parse"
	"github.com/jtitra/labkit/pkg/template"
)

var (
	renderAsset string
	renderFile  string
	renderOut   string
	renderData  []string
	renderRepo  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a workshop template",
	Long: `Render fetches a template from the workshop assets repo (--template)
or reads a local file (--file), fills it with --data values, and
writes the result to --out or stdout.

Templates use Go template syntax with strict lookups: a reference to
a key missing from --data is an error, not empty output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (renderAsset == "") == (renderFile == "") {
			return errors.New("exactly one of --template or --file is required")
		}

		pairs, err := parse.KeyValues(renderData)
		if err != nil {
			return err
		}

		var rendered string
		if renderFile != "" {
			raw, err := os.ReadFile(renderFile)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			rendered, err = template.RenderString(string(raw), pairs)
			if err != nil {
				return err
			}
		} else {
			fetcher := template.NewFetcher()
			if renderRepo != "" {
				fetcher = template.NewFetcher(template.WithRepo(renderRepo))
			}
			rendered, err = fetcher.Render(cmd.Context(), renderAsset, pairs)
			if err != nil {
				return err
			}
		}

		return writeOutput(renderOut, []byte(rendered), 0o644)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderAsset, "template", "", "asset path in the workshop repo")
	renderCmd.Flags().StringVar(&renderFile, "file", "", "local template file")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "write the result to this file instead of stdout")
	renderCmd.Flags().StringArrayVar(&renderData, "data", nil, "template value (key=value, repeatable)")
	renderCmd.Flags().StringVar(&renderRepo, "repo", "", "GitHub repo serving workshop assets (default "+template.DefaultRepo+")")
}
