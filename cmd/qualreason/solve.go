package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-ware/qualreason/ingest"
	"github.com/lattice-ware/qualreason/reasoner"
)

// solveCmd stages a model and solves its hypothesis, printing a verdict
// and setting *status to exitProven or exitNotProven. A usage or model
// error is returned so cobra reports it and main exits exitUsage.
func solveCmd(newLogger func() *slog.Logger, status *int) *cobra.Command {
	var modelPath string
	var csvPath string
	var granularity float64

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the model's hypothesis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return fmt.Errorf("--model is required")
			}

			mf, err := loadModelFile(modelPath)
			if err != nil {
				return err
			}

			var tuples []reasoner.Tuple
			if csvPath != "" {
				f, err := os.Open(csvPath)
				if err != nil {
					return fmt.Errorf("open csv: %w", err)
				}
				defer f.Close()
				tuples, err = ingest.ReadModel(f, granularity)
				if err != nil {
					return err
				}
			} else {
				tuples, err = loadTuples(mf)
				if err != nil {
					return err
				}
			}

			hyp, err := loadHypothesis(mf)
			if err != nil {
				return err
			}

			solver := reasoner.New(reasoner.WithLogger(newLogger()))
			if err := solver.AddMany(tuples); err != nil {
				return err
			}

			proven, err := solver.Solve(hyp)
			if err != nil {
				return err
			}

			if proven {
				fmt.Fprintf(cmd.OutOrStdout(), "proven: %s -> %s holds\n", hyp.Influencing, hyp.Influenced)
				*status = exitProven
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "not proven: %s -> %s does not follow from the model\n", hyp.Influencing, hyp.Influenced)
				*status = exitNotProven
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to the YAML model file (statements + hypothesis)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "path to a CSV file to ingest in place of the model's own statements")
	cmd.Flags().Float64Var(&granularity, "granularity", 1.0, "window width for --csv ingestion")
	return cmd
}
