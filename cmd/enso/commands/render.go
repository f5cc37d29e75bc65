package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/enso/internal/adapters/render"
)

func renderCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a stroke with its fitted circle as PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			format, err := render.ParseFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), "."))
			if err != nil {
				return err
			}

			points, err := loadPoints(cmd, args[0])
			if err != nil {
				return err
			}

			img, attempt, err := opts.svc.Render(cmd.Context(), points, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), attempt)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; .png or .svg")
	return cmd
}
