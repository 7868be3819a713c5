// Package merge implements the interop merge-and-diff engine: it folds the
// shard reports of one CI run into a single results matrix, optionally
// compares the matrix against a previously merged baseline report, and
// assembles the ordered output document.
//
// # Pipeline
//
// The engine is a pure function of its input files. Run drives it
// left-to-right:
//
//	ExpandPatterns -> LoadReport -> Accumulator.MergeShard (per shard)
//	               -> Accumulator.MergeBaseline (optional)
//	               -> Accumulator.Finalize
//
// All state lives in the Accumulator, which is constructed fresh per
// invocation and threaded explicitly through every ingestion call. Nothing
// is retained between runs, so several merges can run in one process.
//
// # Overwrite semantics
//
// Within one run, a later shard overwrites an earlier shard's value for the
// same (client, server, test) triple. Patterns are processed in argument
// order and each pattern's matches are sorted before folding, so the winner
// is deterministic across platforms for the same inputs.
//
// # Regression
//
// The baseline comparison records every previous result under the
// previous-version identity, stores each differing current value under the
// synthetic diff identity, and counts a regression whenever a test went from
// succeeded to failed. The count is monotonic for the run and drives both
// the regression field of the output and the process exit status.
package merge
