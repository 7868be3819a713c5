package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/awslabs/interop/internal/gate"
	"github.com/awslabs/interop/internal/merge"
	"github.com/awslabs/interop/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes for CLI commands.
// These follow common conventions so CI pipelines can branch on the result.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeRegression indicates the merged report shows a test that the
	// previous version passed and the new version fails.
	ExitCodeRegression = 2
	// exitCodeCap keeps failure-count exit codes clear of the shell-reserved
	// range starting at 126.
	exitCodeCap = 125
)

var (
	rootLogLevel string
	rootNoColor  bool
)

// rootCmd represents the base command for the interop application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "interop",
	Short: "Merge, diff and gate QUIC interop test reports",
	Long: `interop turns the per-shard JSON reports produced by QUIC interop
runner executions into a single merged report, diffs the result against a
previous-version baseline, and gates CI on required outcomes.

Report payloads go to standard output (or a file); diagnostics go to
standard error.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	// This is useful for providing cleaner error output to the user.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitForCLI(logging.ParseLevel(rootLogLevel), os.Stderr, rootNoColor)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "interop version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Check for specific error types and return appropriate exit codes
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var regression *merge.RegressionError
	if errors.As(err, &regression) {
		return ExitCodeRegression
	}

	// The gate exits with the number of unmet requirements.
	var unmet *gate.UnmetError
	if errors.As(err, &unmet) {
		if len(unmet.Failures) > exitCodeCap {
			return exitCodeCap
		}
		return len(unmet.Failures)
	}

	// Default to general error
	return ExitCodeError
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands to the root command and wire global flags.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")

	// Flags double as INTEROP_* environment variables for CI, with the
	// command line taking precedence.
	viper.SetEnvPrefix("INTEROP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
