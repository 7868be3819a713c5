// Package scrub rewrites raw interop runner logs down to their structured
// records.
//
// Runner output interleaves human-readable chatter with one-per-line JSON
// records emitted by the endpoints, and shard production wants only the
// records. For every line the scrubber locates the first brace and keeps the
// remainder of the line when it parses as a complete JSON document; every
// other line is dropped. Each file is rewritten through a uniquely named
// temporary file in the same directory followed by an atomic rename, so an
// interrupted run never leaves a half-written log behind.
//
// Files fans the per-file work out across a bounded worker group; the limit
// keeps file-descriptor usage flat when a CI run hands over thousands of
// logs at once.
package scrub
