// Package commands implements the enso command line.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/enso/internal/app"
	"github.com/okian/enso/internal/config"
	"github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/internal/domain/types"
	"github.com/okian/enso/pkg/logger"
)

type rootOptions struct {
	configPath string
	locale     string
	logLevel   string
	output     string

	cfg *config.Config
	svc *service.Service
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "enso",
		Short:         "Score hand-drawn circles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.svc != nil {
				opts.svc.Stop()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default $ENSO_CONFIG)")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "feedback language: en or ja")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&opts.output, "output-format", "f", "text", "result format: text or json")

	root.AddCommand(scoreCmd(opts), replayCmd(opts), renderCmd(opts), demoCmd(opts))
	return root
}

// Execute runs the root command, reporting errors on stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "enso:", err)
		return err
	}
	return nil
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFrom(ctx, o.configPath)
	} else {
		o.cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		o.cfg.LogLevel = o.logLevel
	}
	if o.locale != "" {
		o.cfg.Locale = o.locale
	}
	switch o.output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}

	// Logs go to stderr so results on stdout stay parseable.
	if err := logger.InitWithWriter(cmd.ErrOrStderr(), o.cfg.LogFormat); err != nil {
		return err
	}
	if err := logger.SetLevelString(o.cfg.LogLevel); err != nil {
		return err
	}

	o.svc = service.New(
		service.WithLogger(logger.Named("enso")),
		service.WithLocale(scoring.ParseLocale(o.cfg.Locale)),
		service.WithMinCapturePoints(o.cfg.MinCapturePoints),
		service.WithMaxStrokePoints(o.cfg.MaxStrokePoints),
		service.WithCanvasSize(o.cfg.CanvasWidth, o.cfg.CanvasHeight),
		service.WithScoringOptions(
			scoring.WithMinPoints(o.cfg.MinScoringPoints),
			scoring.WithPenalties(o.cfg.UniformityPenalty, o.cfg.ClosurePenalty),
			scoring.WithWeights(o.cfg.UniformityWeight, o.cfg.ClosureWeight),
		),
	)
	return o.svc.Start(ctx)
}

func (o *rootOptions) print(w io.Writer, a types.Attempt) error {
	if o.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	if a.Feedback == "" {
		_, err := fmt.Fprintf(w, "%s: %d points, not scored\n", a.Outcome, a.Points)
		return err
	}
	if _, err := fmt.Fprintf(w, "score %d (%s)\n%s\n", a.Score, a.Feedback, a.Message); err != nil {
		return err
	}
	if a.Circle != nil {
		_, err := fmt.Fprintf(w, "fitted circle center (%.2f, %.2f) radius %.2f over %d points\n",
			a.Circle.Center.X, a.Circle.Center.Y, a.Circle.Radius, a.Points)
		return err
	}
	return nil
}
