// Package render formats a merged interop report for people and publishing
// pipelines.
//
// Four output formats are supported:
//
//   - table: a colored terminal grid of clients against servers with
//     per-pair pass/fail/unsupported counts and a run summary
//   - markdown: a GitHub-flavored matrix with per-test result glyphs,
//     suitable for PR comments
//   - json: indented re-emission of the report document
//   - yaml: the report document with JSON field names preserved
//
// Rendering never mutates the report. The grid is re-keyed through the same
// positional walk the merge engine uses, so a malformed document fails fast
// instead of rendering misaligned cells.
package render
