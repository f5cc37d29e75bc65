package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/enso/internal/adapters/render"
	"github.com/okian/enso/internal/domain/capture"
)

func replayCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a pointer event script through the capture machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := loadEvents(cmd, args[0])
			if err != nil {
				return err
			}

			var canvas *render.Canvas
			var renderer capture.Renderer
			if out != "" {
				canvas = render.NewCanvas(opts.cfg.CanvasWidth, opts.cfg.CanvasHeight)
				renderer = canvas
			}

			attempt, err := opts.svc.Replay(cmd.Context(), events, renderer)
			if err != nil {
				return err
			}

			if canvas != nil {
				img, err := canvas.PNG()
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, img, 0o644); err != nil {
					return err
				}
			}
			return opts.print(cmd.OutOrStdout(), attempt)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the final drawing surface as PNG")
	return cmd
}
