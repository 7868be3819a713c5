package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/awslabs/interop/internal/merge"
	"github.com/awslabs/interop/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	mergeBaseline   string
	mergeNewSuffix  string
	mergePrevSuffix string
	mergeNewURL     string
	mergePrevURL    string
	mergeNewLogURL  string
	mergePrevLogURL string
	mergeLogDir     string
	mergeOutput     string
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge [flags] PATTERN...",
	Short: "Merge shard reports into a single interop report",
	Long: `Merge the per-shard JSON reports produced by parallel interop runner
executions into one report document.

Shards are merged in command-line order; glob patterns (including **) expand
to their matches sorted per pattern. When --baseline names a previous-version
report, results recorded there for the reserved s2n-quic name are compared
pair by pair against the current run and every difference is written back
into the grid under a synthetic s2n-quic-diff identity.

Examples:
  interop merge 'shards/**/result.json'
  interop merge --new-version-suffix PR-42 --baseline main.json 'shards/*.json'
  interop merge --output merged.json shard-a.json shard-b.json

A regression (a test the previous version passed and the new version fails)
still writes the merged report, then exits with status 2.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeBaseline, "baseline", "", "Previous-version report to diff against")
	mergeCmd.Flags().StringVar(&mergeNewSuffix, "new-version-suffix", "", "Suffix distinguishing the new s2n-quic build (lowercased)")
	mergeCmd.Flags().StringVar(&mergePrevSuffix, "prev-version-suffix", "", "Suffix distinguishing the previous s2n-quic build (lowercased)")
	mergeCmd.Flags().StringVar(&mergeNewURL, "new-version-url", "", "Source URL recorded for the new version")
	mergeCmd.Flags().StringVar(&mergePrevURL, "prev-version-url", "", "Source URL recorded for the previous version")
	mergeCmd.Flags().StringVar(&mergeNewLogURL, "new-version-log-url", "", "Log location recorded for the new version")
	mergeCmd.Flags().StringVar(&mergePrevLogURL, "prev-version-log-url", "", "Log location recorded for the previous version")
	mergeCmd.Flags().StringVar(&mergeLogDir, "interop-log-url", "", "Log directory recorded verbatim in the report")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the merged report to a file instead of stdout")

	// Every merge flag doubles as an INTEROP_* environment variable so CI
	// can configure the merge without templating the command line.
	for _, name := range []string{
		"baseline",
		"new-version-suffix", "prev-version-suffix",
		"new-version-url", "prev-version-url",
		"new-version-log-url", "prev-version-log-url",
		"interop-log-url", "output",
	} {
		viper.BindPFlag(name, mergeCmd.Flags().Lookup(name))
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := merge.Config{
		Patterns:          args,
		Baseline:          viper.GetString("baseline"),
		NewVersionSuffix:  viper.GetString("new-version-suffix"),
		PrevVersionSuffix: viper.GetString("prev-version-suffix"),
		NewVersionURL:     viper.GetString("new-version-url"),
		PrevVersionURL:    viper.GetString("prev-version-url"),
		NewVersionLogURL:  viper.GetString("new-version-log-url"),
		PrevVersionLogURL: viper.GetString("prev-version-log-url"),
		LogDir:            viper.GetString("interop-log-url"),
	}

	outcome, err := merge.Run(cfg)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, outcome.Report, viper.GetString("output")); err != nil {
		return err
	}

	// The report is written either way; regressions surface through the
	// exit status so CI can gate on them.
	if outcome.Regressions > 0 {
		return &merge.RegressionError{Count: outcome.Regressions}
	}
	return nil
}

// writeReport emits the merged document to stdout or the named file.
func writeReport(cmd *cobra.Command, doc *report.Report, path string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
