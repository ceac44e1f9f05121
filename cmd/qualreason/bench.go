package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-ware/qualreason/internal/bench"
)

// benchCmd stages a model, times repeat solves of its hypothesis
// against a freshly constructed Solver each time, and prints min/mean/
// max wall time, the Go analogue of benchmark.py's timing report.
func benchCmd() *cobra.Command {
	var modelPath string
	var repeat int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time the solver against the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return fmt.Errorf("--model is required")
			}

			mf, err := loadModelFile(modelPath)
			if err != nil {
				return err
			}
			tuples, err := loadTuples(mf)
			if err != nil {
				return err
			}
			hyp, err := loadHypothesis(mf)
			if err != nil {
				return err
			}

			stats, err := bench.Run(tuples, hyp, repeat)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "min=%s mean=%s max=%s result=%t\n", stats.Min, stats.Mean, stats.Max, stats.Result)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to the YAML model file")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "number of solve iterations to time")
	return cmd
}
