package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/enso/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"ENSO_CONFIG",
	"ENSO_ADDR",
	"ENSO_LOG_LEVEL",
	"ENSO_LOG_FORMAT",
	"ENSO_LOCALE",
	"ENSO_MIN_CAPTURE_POINTS",
	"ENSO_MIN_SCORING_POINTS",
	"ENSO_UNIFORMITY_WEIGHT",
	"ENSO_CLOSURE_WEIGHT",
	"ENSO_MAX_STROKE_POINTS",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enso.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ENSO_ADDR", ":8080")
			_ = os.Setenv("ENSO_LOCALE", "ja")
			_ = os.Setenv("ENSO_MIN_CAPTURE_POINTS", "15")
			_ = os.Setenv("ENSO_UNIFORMITY_WEIGHT", "0.6")
			_ = os.Setenv("ENSO_CLOSURE_WEIGHT", "0.4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Locale, convey.ShouldEqual, "ja")
				convey.So(cfg.MinCapturePoints, convey.ShouldEqual, 15)
				convey.So(cfg.UniformityWeight, convey.ShouldEqual, 0.6)
				convey.So(cfg.ClosureWeight, convey.ShouldEqual, 0.4)
				convey.So(cfg.MinScoringPoints, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
# drawing surface
addr: ":9090"
canvas_width: 800
canvas_height: 800
log_format: json
`)
			_ = os.Setenv("ENSO_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CanvasWidth, convey.ShouldEqual, 800)
				convey.So(cfg.CanvasHeight, convey.ShouldEqual, 800)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MinCapturePoints, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := createTempConfigFile(t, "addr: \":9090\"\nmax_stroke_points: 500\n")
			_ = os.Setenv("ENSO_ADDR", ":7070")

			cfg, err := config.LoadFrom(ctx, path)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxStrokePoints, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading an invalid YAML file", func() {
			path := createTempConfigFile(t, "addr: [unterminated\n")

			_, err := config.LoadFrom(ctx, path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.LoadFrom(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric env var does not parse", func() {
			_ = os.Setenv("ENSO_MIN_CAPTURE_POINTS", "many")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the loaded values fail validation", func() {
			_ = os.Setenv("ENSO_MIN_SCORING_POINTS", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
