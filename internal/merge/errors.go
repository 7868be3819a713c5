package merge

import "fmt"

// NoMatchError reports an input path that matched no file. Wildcard patterns
// may legitimately match nothing; a meta-free pattern names one exact file,
// so its absence is an input error.
type NoMatchError struct {
	// Pattern is the path argument that matched nothing.
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no file matches %q", e.Pattern)
}

// VersionConflictError reports two shards disagreeing on a protocol version
// field. Protocol-version ambiguity is never silently resolved; the merge
// aborts instead.
type VersionConflictError struct {
	// Field is the conflicting envelope field, quic_draft or quic_version.
	Field string
	// Have is the raw value the current shard carries.
	Have string
	// Want is the raw value recorded by an earlier shard.
	Want string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s %s does not match %s recorded by an earlier shard", e.Field, e.Have, e.Want)
}

// RegressionError signals that the merged run contains at least one test
// that succeeded on the previous build and failed on the new one. The merged
// report has been fully written by the time this surfaces; it exists so the
// caller can distinguish "tool failed to run" from "tool ran and found a
// regression" through the exit status.
type RegressionError struct {
	// Count is the number of regressed (client, server, test) triples.
	Count int
}

func (e *RegressionError) Error() string {
	if e.Count == 1 {
		return "regression: 1 test went from succeeded to failed"
	}
	return fmt.Sprintf("regression: %d tests went from succeeded to failed", e.Count)
}
