package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/lattice-ware/qualreason/reasoner"
	"github.com/lattice-ware/qualreason/render"
)

// renderCmd stages a model, solves its hypothesis (so the rendered
// snapshot reflects every transitive statement the solve builds), and
// writes a PNG of one sub-plot per influence pair to --out.
func renderCmd(newLogger func() *slog.Logger) *cobra.Command {
	var modelPath string
	var outPath string
	var width, height float64

	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the model to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return fmt.Errorf("--model is required")
			}
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			mf, err := loadModelFile(modelPath)
			if err != nil {
				return err
			}
			tuples, err := loadTuples(mf)
			if err != nil {
				return err
			}

			solver := reasoner.New(reasoner.WithLogger(newLogger()))
			if err := solver.AddMany(tuples); err != nil {
				return err
			}

			var hyp *reasoner.Tuple
			if mf.Hypothesis != nil {
				h, err := loadHypothesis(mf)
				if err != nil {
					return err
				}
				if _, err := solver.Solve(h); err != nil {
					return err
				}
				hyp = &h
			}

			canvas, err := render.Render(solver.Snapshot(), hyp, vg.Points(width), vg.Points(height))
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()

			if _, err := canvas.WriteTo(f); err != nil {
				return fmt.Errorf("write png: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "path to the YAML model file")
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG path")
	cmd.Flags().Float64Var(&width, "width", 800, "image width in points")
	cmd.Flags().Float64Var(&height, "height", 600, "image height in points")
	return cmd
}
