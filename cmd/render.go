package cmd

import (
	"fmt"
	"os"

	"github.com/awslabs/interop/internal/merge"
	"github.com/awslabs/interop/internal/render"

	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOutput string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [flags] REPORT",
	Short: "Format a merged report for terminals and PR comments",
	Long: `Format a merged report for reading.

Available formats:
  table    - colored terminal grid with a run summary (default)
  markdown - GitHub-flavored matrix for PR comments
  json     - indented re-emission of the report
  yaml     - the report with its JSON field names

Examples:
  interop render merged.json
  interop render --format markdown merged.json > comment.md
  interop render -f yaml -o report.yaml merged.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "table", "Output format (table, markdown, json, yaml)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write to a file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(renderFormat)
	if err != nil {
		return err
	}
	doc, err := merge.LoadReport(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderOutput != "" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", renderOutput, err)
		}
		defer f.Close()
		out = f
	}
	return render.Render(out, doc, render.Options{
		Format: format,
		Color:  !rootNoColor && renderOutput == "",
	})
}
