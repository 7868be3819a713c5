// Package gate enforces required interop outcomes against a merged report.
//
// CI pipelines that tolerate partial interop failure still need a floor:
// certain tests must succeed for certain implementations in certain endpoint
// roles before a change may land. The gate reads that floor from a YAML file
// mapping test name to implementation to required roles:
//
//	handshake:
//	  s2n-quic: [client, server]
//	  quic-go: [server]
//
// A requirement (test, implementation, role) is met when at least one grid
// pair with that implementation in that role records a succeeded result for
// the test. The test key may be either the abbreviated name used in the
// result grid or the full display name; when both interpretations match, the
// abbreviation wins. A test that never appears in the report meets nothing,
// so requiring it fails the gate.
//
// Evaluate returns the unmet requirements in a stable order so CI output is
// diffable between runs.
package gate
