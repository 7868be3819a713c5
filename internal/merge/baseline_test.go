package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awslabs/interop/internal/report"
)

// mergedCurrent builds an accumulator holding one current-run result for the
// new-version self-pair.
func mergedCurrent(t *testing.T, resolver *report.Resolver, abbr string, result report.Result) *Accumulator {
	t.Helper()
	acc := NewAccumulator(resolver)
	shard := newShard([]string{"s2n-quic"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry(abbr, result)}})
	require.NoError(t, acc.MergeShard(shard))
	return acc
}

func baselineSelfPair(abbr string, result report.Result) *report.Report {
	return newShard([]string{"s2n-quic"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry(abbr, result)}})
}

func TestMergeBaseline_RegressionOnNewFailure(t *testing.T) {
	resolver := report.NewResolver("pr-9", "")
	acc := mergedCurrent(t, resolver, "H", report.ResultFailed)

	require.NoError(t, acc.MergeBaseline(baselineSelfPair("H", report.ResultSucceeded)))

	assert.Equal(t, 1, acc.regressions)

	diffSelf := report.Pair{Client: resolver.Diff(), Server: resolver.Diff()}
	assert.Equal(t, report.ResultFailed, acc.resultAt(diffSelf, "H"))

	// The previous result itself lands under the previous-version identity.
	prevSelf := report.Pair{Client: resolver.PreviousVersion(), Server: resolver.PreviousVersion()}
	assert.Equal(t, report.ResultSucceeded, acc.resultAt(prevSelf, "H"))
}

func TestMergeBaseline_NoRegressionOnFix(t *testing.T) {
	resolver := report.NewResolver("pr-9", "")
	acc := mergedCurrent(t, resolver, "H", report.ResultSucceeded)

	require.NoError(t, acc.MergeBaseline(baselineSelfPair("H", report.ResultFailed)))

	assert.Equal(t, 0, acc.regressions)

	// The improvement still shows up as a diff entry.
	diffSelf := report.Pair{Client: resolver.Diff(), Server: resolver.Diff()}
	assert.Equal(t, report.ResultSucceeded, acc.resultAt(diffSelf, "H"))
}

func TestMergeBaseline_EqualResultsProduceNoDiff(t *testing.T) {
	resolver := report.NewResolver("", "")
	acc := mergedCurrent(t, resolver, "H", report.ResultSucceeded)

	require.NoError(t, acc.MergeBaseline(baselineSelfPair("H", report.ResultSucceeded)))

	diffSelf := report.Pair{Client: resolver.Diff(), Server: resolver.Diff()}
	assert.Equal(t, report.ResultAbsent, acc.resultAt(diffSelf, "H"))
	assert.Equal(t, 0, acc.regressions)
}

func TestMergeBaseline_AbsentCurrentResult(t *testing.T) {
	// The baseline covers a test the current run never executed. The diff
	// cell stays sparse and no regression is counted.
	resolver := report.NewResolver("", "")
	acc := NewAccumulator(resolver)

	require.NoError(t, acc.MergeBaseline(baselineSelfPair("H", report.ResultSucceeded)))

	diffSelf := report.Pair{Client: resolver.Diff(), Server: resolver.Diff()}
	assert.Equal(t, report.ResultAbsent, acc.resultAt(diffSelf, "H"))
	assert.Equal(t, 0, acc.regressions)

	// The diff identity is still tracked for the output lists.
	_, trackedClient := acc.clients[resolver.Diff()]
	_, trackedServer := acc.servers[resolver.Diff()]
	assert.True(t, trackedClient)
	assert.True(t, trackedServer)
}

func TestMergeBaseline_ServerSidePairing(t *testing.T) {
	// Baseline pair (quic-go, s2n-quic) compares against the current
	// (quic-go, new-version) pair and lands its diff at (quic-go, diff).
	resolver := report.NewResolver("pr-9", "")
	acc := NewAccumulator(resolver)

	current := newShard([]string{"quic-go"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry("H", report.ResultFailed)}})
	require.NoError(t, acc.MergeShard(current))

	baseline := newShard([]string{"quic-go"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry("H", report.ResultSucceeded)}})
	require.NoError(t, acc.MergeBaseline(baseline))

	other := report.Identity{Name: "quic-go", Role: report.RoleOther}
	assert.Equal(t, report.ResultSucceeded,
		acc.resultAt(report.Pair{Client: other, Server: resolver.PreviousVersion()}, "H"))
	assert.Equal(t, report.ResultFailed,
		acc.resultAt(report.Pair{Client: other, Server: resolver.Diff()}, "H"))
	assert.Equal(t, 1, acc.regressions)

	// Diff is tracked only on the touched side.
	_, diffAsServer := acc.servers[resolver.Diff()]
	_, diffAsClient := acc.clients[resolver.Diff()]
	assert.True(t, diffAsServer)
	assert.False(t, diffAsClient)
}

func TestMergeBaseline_ClientSidePairing(t *testing.T) {
	// Baseline pair (s2n-quic, quic-go) compares against the current
	// (new-version, quic-go) pair and lands its diff at (diff, quic-go).
	resolver := report.NewResolver("pr-9", "")
	acc := NewAccumulator(resolver)

	current := newShard([]string{"s2n-quic"}, []string{"quic-go"},
		[][]report.ResultEntry{{entry("H", report.ResultUnsupported)}})
	require.NoError(t, acc.MergeShard(current))

	baseline := newShard([]string{"s2n-quic"}, []string{"quic-go"},
		[][]report.ResultEntry{{entry("H", report.ResultSucceeded)}})
	require.NoError(t, acc.MergeBaseline(baseline))

	other := report.Identity{Name: "quic-go", Role: report.RoleOther}
	assert.Equal(t, report.ResultUnsupported,
		acc.resultAt(report.Pair{Client: resolver.Diff(), Server: other}, "H"))

	// succeeded -> unsupported is a difference, not a regression.
	assert.Equal(t, 0, acc.regressions)
}

func TestMergeBaseline_SkipsPairsNotTouchingPreviousVersion(t *testing.T) {
	resolver := report.NewResolver("", "")
	acc := NewAccumulator(resolver)

	baseline := newShard([]string{"quic-go"}, []string{"ngtcp2"},
		[][]report.ResultEntry{{entry("H", report.ResultSucceeded)}})
	require.NoError(t, acc.MergeBaseline(baseline))

	assert.Empty(t, acc.results)
	assert.Empty(t, acc.clients)
	assert.Empty(t, acc.servers)
}

func TestMergeBaseline_SkipsStaleFamilyPairs(t *testing.T) {
	// An old baseline can still name a suffixed build from a previous run.
	// Pairs between two differing family identities never diff cleanly.
	resolver := report.NewResolver("pr-9", "")
	acc := NewAccumulator(resolver)

	baseline := newShard([]string{"s2n-quic-pr-7"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry("H", report.ResultSucceeded)}})
	require.NoError(t, acc.MergeBaseline(baseline))

	assert.Empty(t, acc.results)
	assert.Empty(t, acc.clients)
	assert.Empty(t, acc.servers)
	assert.Equal(t, 0, acc.regressions)
}

func TestMergeBaseline_MeasurementsCarriedNotDiffed(t *testing.T) {
	resolver := report.NewResolver("", "")
	acc := NewAccumulator(resolver)

	baseline := baselineSelfPair("H", report.ResultSucceeded)
	baseline.Measurements = [][]report.Measurement{{
		{"abbr": "T", "result": "succeeded", "details": "98 (± 3) kbps"},
	}}
	require.NoError(t, acc.MergeBaseline(baseline))

	prevSelf := report.Pair{Client: resolver.PreviousVersion(), Server: resolver.PreviousVersion()}
	require.Contains(t, acc.measurements[prevSelf], "T")

	// No synthetic measurement diff is ever produced.
	diffSelf := report.Pair{Client: resolver.Diff(), Server: resolver.Diff()}
	assert.NotContains(t, acc.measurements, diffSelf)
}

func TestMergeBaseline_RegressionFlagIsMonotonic(t *testing.T) {
	resolver := report.NewResolver("", "")
	acc := mergedCurrent(t, resolver, "H", report.ResultFailed)

	// Second test improves; the earlier regression must survive.
	current := newShard([]string{"s2n-quic"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{entry("Z", report.ResultSucceeded)}})
	require.NoError(t, acc.MergeShard(current))

	baseline := newShard([]string{"s2n-quic"}, []string{"s2n-quic"},
		[][]report.ResultEntry{{
			entry("H", report.ResultSucceeded),
			entry("Z", report.ResultFailed),
		}})
	require.NoError(t, acc.MergeBaseline(baseline))

	assert.Equal(t, 1, acc.regressions)
}
