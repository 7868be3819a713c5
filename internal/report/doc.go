// Package report defines the interop report data model shared by every
// command: the document envelope produced by test-runner shards and by the
// merge itself, the result enumeration, and the implementation identities.
//
// # Documents
//
// A shard is one runner invocation's output covering a subset of the full
// client x server x test grid. A merged report uses the same envelope plus
// the log-directory fields and, when a baseline comparison ran, the version
// and regression fields. Both decode through Decode, which enforces the one
// structural invariant positional consumption depends on: the results and
// measurements arrays carry exactly one row per (client, server) pair of the
// declared cross product, in declaration order, because the wire format has
// no explicit pair key per row.
//
// # Identities
//
// The name "s2n-quic" is ambiguous within one CI run: it can mean the build
// under test or the previous build used for regression comparison. Resolver
// rewrites names into tagged identities once per ingestion pass, so the rest
// of the engine never has to guess which build a bare string refers to. The
// synthetic diff identity exists purely to carry per-test differences
// between the two builds.
package report
