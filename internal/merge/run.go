package merge

import (
	"fmt"

	"github.com/awslabs/interop/internal/report"
	"github.com/awslabs/interop/pkg/logging"
)

// Config is the full configuration of one merge run.
type Config struct {
	// Patterns are the shard glob patterns, in argument order.
	Patterns []string
	// Baseline is the path of a previously merged report to diff against;
	// empty disables the comparison.
	Baseline string

	// NewVersionSuffix and PrevVersionSuffix disambiguate the reserved
	// implementation name into the two build identities.
	NewVersionSuffix  string
	PrevVersionSuffix string

	// LogDir is persisted verbatim into the output's log_dir field.
	LogDir string
	// NewVersionURL and PrevVersionURL set the reference URLs of the two
	// builds in the urls map, overriding shard-supplied entries.
	NewVersionURL  string
	PrevVersionURL string
	// NewVersionLogURL and PrevVersionLogURL populate the per-build log
	// directory map.
	NewVersionLogURL  string
	PrevVersionLogURL string
}

// Outcome is the product of one merge run.
type Outcome struct {
	// Report is the assembled merged document.
	Report *report.Report
	// Regressions is how many triples went from succeeded to failed.
	Regressions int
}

// Run executes one whole merge: pattern expansion, shard folding, the
// optional baseline comparison and final assembly. The caller owns writing
// the report and turning Regressions into an exit status, so a regression
// never suppresses the output document.
func Run(cfg Config) (*Outcome, error) {
	resolver := report.NewResolver(cfg.NewVersionSuffix, cfg.PrevVersionSuffix)
	acc := NewAccumulator(resolver)

	paths, err := ExpandPatterns(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		shard, err := LoadReport(path)
		if err != nil {
			return nil, err
		}
		if err := acc.MergeShard(shard); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logging.Debug("merge", "folded shard %s", path)
	}
	logging.Info("merge", "merged %d shard files", len(paths))

	if cfg.Baseline != "" {
		baseline, err := LoadReport(cfg.Baseline)
		if err != nil {
			return nil, err
		}
		if err := acc.MergeBaseline(baseline); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Baseline, err)
		}
		logging.Info("merge", "compared against %s: %d regressed tests", cfg.Baseline, acc.regressions)
	}

	return &Outcome{Report: acc.Finalize(cfg), Regressions: acc.regressions}, nil
}
