package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/awslabs/interop/internal/merge"
	"github.com/awslabs/interop/internal/scrub"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	scrubWorkers int
	scrubQuiet   bool
)

// scrubCmd represents the scrub command
var scrubCmd = &cobra.Command{
	Use:   "scrub [flags] PATTERN...",
	Short: "Reduce raw runner logs to their structured records",
	Long: `Reduce raw interop runner logs to their structured records.

Runner output mixes human-readable chatter with one-per-line JSON records.
Scrubbing keeps only the lines holding a valid record (found by locating the
first brace) and rewrites each file in place through an atomic rename.

Examples:
  interop scrub 'logs/**/*.log'
  interop scrub --workers 16 client.log server.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrub,
}

func init() {
	rootCmd.AddCommand(scrubCmd)

	scrubCmd.Flags().IntVarP(&scrubWorkers, "workers", "w", runtime.NumCPU(), "Maximum files scrubbed concurrently")
	scrubCmd.Flags().BoolVarP(&scrubQuiet, "quiet", "q", false, "Suppress non-essential output")
}

func runScrub(cmd *cobra.Command, args []string) error {
	paths, err := merge.ExpandPatterns(args)
	if err != nil {
		return err
	}

	var s *spinner.Spinner
	if !scrubQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" Scrubbing %d file(s)...", len(paths))
		s.Start()
	}

	stats, err := scrub.Files(cmd.Context(), paths, scrubWorkers)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	if !scrubQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Scrubbed %d file(s): kept %d record(s), dropped %d line(s)\n",
			stats.Files, stats.Kept, stats.Dropped)
	}
	return nil
}
