package cmd

import (
	"fmt"

	"github.com/awslabs/interop/internal/gate"
	"github.com/awslabs/interop/internal/merge"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	checkRequirements string
	checkQuiet        bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] REPORT",
	Short: "Check a merged report against required outcomes",
	Long: `Check that a merged report satisfies every required outcome.

The requirements file maps a test to the implementations that must pass it
and the endpoint roles they must pass it in:

  handshake:
    s2n-quic: [client, server]
    quic-go: [server]

Examples:
  interop check --requirements required.yaml merged.json
  interop check -r required.yaml -q merged.json

When requirements are unmet, each failure is listed and the exit status is
the number of unmet requirements (capped at 125).`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkRequirements, "requirements", "r", "", "Required-outcomes YAML file")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Suppress non-essential output")
	checkCmd.MarkFlagRequired("requirements")
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := merge.LoadReport(args[0])
	if err != nil {
		return err
	}
	reqs, err := gate.LoadRequirements(checkRequirements)
	if err != nil {
		return err
	}

	failures, err := gate.Evaluate(doc, reqs)
	if err != nil {
		return err
	}
	if len(failures) == 0 {
		if !checkQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "All required outcomes met (%d test(s) checked)\n", len(reqs))
		}
		return nil
	}

	if !checkQuiet {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.ErrOrStderr())
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"TEST", "IMPLEMENTATION", "ROLE"})
		for _, failure := range failures {
			t.AppendRow(table.Row{failure.Test, failure.Implementation, failure.Role})
		}
		t.Render()
	}
	return &gate.UnmetError{Failures: failures}
}
