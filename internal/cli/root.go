// Package cli wires the command line to the benchmark core.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "ssebench",
	Short:   "Measure the latency cost of S3 server-side encryption",
	Version: version,
	Long: `ssebench quantifies how much latency server-side encryption adds to S3
uploads and downloads. Each iteration uploads (and optionally downloads) a
baseline object and an encrypted one, and the report gives per-operation
percentile summaries plus a paired-difference confidence interval, so noisy
links do not turn into false claims either way.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	RootCmd.AddCommand(runCmd)
}

// newLogger builds the diagnostic logger. The report goes to stdout; all
// logging goes to stderr so the two never interleave.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
