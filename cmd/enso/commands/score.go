package commands

import (
	"github.com/spf13/cobra"

	"github.com/okian/enso/internal/adapters/strokefile"
	"github.com/okian/enso/internal/domain/model"
)

func scoreCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score FILE",
		Short: "Score a recorded stroke (JSON or YAML points, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := loadPoints(cmd, args[0])
			if err != nil {
				return err
			}

			attempt, err := opts.svc.ScoreStroke(cmd.Context(), points)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), attempt)
		},
	}
	return cmd
}

func loadPoints(cmd *cobra.Command, path string) ([]model.Point, error) {
	if path == "-" {
		return strokefile.ReadPoints(cmd.InOrStdin(), strokefile.Auto)
	}
	return strokefile.LoadPoints(path)
}

func loadEvents(cmd *cobra.Command, path string) ([]model.PointerEvent, error) {
	if path == "-" {
		return strokefile.ReadEvents(cmd.InOrStdin(), strokefile.Auto)
	}
	return strokefile.LoadEvents(path)
}
