package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/enso/internal/adapters/strokefile"
	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/strokegen"
)

func demoCmd(opts *rootOptions) *cobra.Command {
	var (
		shape    string
		radius   float64
		segments int
		seed     int64
		save     string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a synthetic stroke and score it through the capture machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			center := model.Point{X: float64(opts.cfg.CanvasWidth) / 2, Y: float64(opts.cfg.CanvasHeight) / 2}
			points, err := strokegen.Generate(shape, center, radius, segments, seed)
			if err != nil {
				return err
			}

			if save != "" {
				f, err := os.Create(save)
				if err != nil {
					return err
				}
				werr := strokefile.WritePoints(f, points, strokefile.FormatFromPath(save))
				if cerr := f.Close(); werr == nil {
					werr = cerr
				}
				if werr != nil {
					return fmt.Errorf("save stroke: %w", werr)
				}
			}

			attempt, err := opts.svc.Replay(cmd.Context(), strokegen.PointerScript(points), nil)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), attempt)
		},
	}

	cmd.Flags().StringVar(&shape, "shape", strokegen.ShapeCircle, "circle, wobbly, jagged, open, ellipse or tap")
	cmd.Flags().Float64Var(&radius, "radius", 100, "radius in pixels")
	cmd.Flags().IntVar(&segments, "segments", 72, "samples per stroke")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for wobbly strokes")
	cmd.Flags().StringVar(&save, "save", "", "also write the generated stroke to this file")
	return cmd
}
