// Command qualreason loads a statement model and either solves a
// hypothesis against it, renders it to a PNG, or benchmarks the solver
// over it, mirroring main.py's three usage shapes (solve-and-print,
// CSV-driven, verbose/plotting) as cobra subcommands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// exitProven and exitNotProven are the two non-error codes solveCmd can
// signal: 0 when the hypothesis holds, 1 when it does not. Any other
// failure (bad flags, unreadable model, malformed quality) surfaces as
// a cobra error and exits 2.
const (
	exitProven    = 0
	exitNotProven = 1
	exitUsage     = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var verbose bool
	status := exitProven

	root := &cobra.Command{
		Use:           "qualreason",
		Short:         "qualitative influence reasoner",
		Long:          "Stages influence statements between variables and answers hypothesis queries over a four-valued quality algebra.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log at debug level")

	newLogger := func() *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(
		solveCmd(newLogger, &status),
		renderCmd(newLogger),
		benchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitUsage
	}
	return status
}
