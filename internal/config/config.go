// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Locale picks the feedback message language: en or ja.
	Locale string `koanf:"locale"`

	// CanvasWidth and CanvasHeight size the headless drawing surface.
	CanvasWidth  int `koanf:"canvas_width"`
	CanvasHeight int `koanf:"canvas_height"`

	// MinCapturePoints is the accidental-tap threshold of the capture machine.
	MinCapturePoints int `koanf:"min_capture_points"`

	// MinScoringPoints is the scorer's own degenerate-input gate.
	MinScoringPoints int `koanf:"min_scoring_points"`

	// UniformityPenalty and ClosurePenalty scale the normalized deviations.
	UniformityPenalty float64 `koanf:"uniformity_penalty"`
	ClosurePenalty    float64 `koanf:"closure_penalty"`

	// UniformityWeight and ClosureWeight blend the two sub-scores.
	UniformityWeight float64 `koanf:"uniformity_weight"`
	ClosureWeight    float64 `koanf:"closure_weight"`

	// MaxStrokePoints caps the samples accepted per stroke or session.
	MaxStrokePoints int `koanf:"max_stroke_points"`

	// MaxBodyBytes caps HTTP request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		Locale:            "en",
		CanvasWidth:       600,
		CanvasHeight:      400,
		MinCapturePoints:  10,
		MinScoringPoints:  20,
		UniformityPenalty: 300,
		ClosurePenalty:    200,
		UniformityWeight:  0.7,
		ClosureWeight:     0.3,
		MaxStrokePoints:   10_000,
		MaxBodyBytes:      1 << 20,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must be at least 1x1, got %dx%d", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	case c.MinCapturePoints < 1:
		return fmt.Errorf("%w: min_capture_points must be positive", ErrInvalidConfig)
	case c.MinScoringPoints < 1:
		return fmt.Errorf("%w: min_scoring_points must be positive", ErrInvalidConfig)
	case c.UniformityPenalty <= 0 || c.ClosurePenalty <= 0:
		return fmt.Errorf("%w: penalties must be positive", ErrInvalidConfig)
	case c.UniformityWeight < 0 || c.ClosureWeight < 0 || c.UniformityWeight+c.ClosureWeight == 0:
		return fmt.Errorf("%w: weights must be non-negative and not both zero", ErrInvalidConfig)
	case c.MaxStrokePoints < c.MinCapturePoints:
		return fmt.Errorf("%w: max_stroke_points below min_capture_points", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
