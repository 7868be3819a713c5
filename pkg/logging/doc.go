// Package logging provides a structured logging system for interop with unified
// log handling and subsystem tagging.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Architecture
//
// The logging system is built around these core concepts:
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about tool operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// All log entries include:
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
//	import "github.com/awslabs/interop/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr, false)
//
//	// Log messages
//	logging.Info("merge", "folded %d shard files", count)
//	logging.Debug("loader", "pattern %q matched %d files", pattern, n)
//	logging.Warn("gate", "requirements file names unknown role %q", role)
//	logging.Error("merge", err, "failed to load baseline")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **loader**: pattern expansion and shard parsing
//   - **merge**: matrix folding and baseline comparison
//   - **gate**: required-outcome evaluation
//   - **scrub**: log-file extraction
//   - **render**: report formatting
//
// # Output Discipline
//
// Standard output is reserved for the report payload; every log entry goes to
// the writer passed to InitForCLI, which the commands set to stderr. Output is
// colorized through the tint handler and falls back to plain text on Windows
// or when color is disabled.
//
// # Thread Safety
//
// The logging system is fully thread-safe:
//   - Safe concurrent logging from multiple goroutines
//   - Level filtering at handler level for efficiency
//   - No data races in configuration
package logging
