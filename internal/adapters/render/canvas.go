// Package render draws strokes and fitted circles off-screen.
//
// Canvas is the raster drawing surface handed to a capture machine. SVG and
// RasterizeSVG produce a standalone image of a finished stroke.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
)

// Default surface size, matching the drawing area of the web client.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// Style holds the colors and pen widths of a rendering.
type Style struct {
	Background  color.RGBA
	Stroke      color.RGBA
	Fit         color.RGBA
	Text        color.RGBA
	StrokeWidth float64
	FitWidth    float64
	FitDash     []float64
}

// DefaultStyle is slate background, blue pen, dashed green fit.
func DefaultStyle() Style {
	return Style{
		Background:  color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
		Stroke:      color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		Fit:         color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
		Text:        color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
		StrokeWidth: 3,
		FitWidth:    2,
		FitDash:     []float64{5, 5},
	}
}

// CanvasOption applies a configuration option to the Canvas.
type CanvasOption func(*Canvas)

// WithStyle replaces the default style.
func WithStyle(s Style) CanvasOption {
	return func(c *Canvas) {
		c.style = s
	}
}

// WithLabel toggles the score caption drawn with the fitted circle.
func WithLabel(enabled bool) CanvasOption {
	return func(c *Canvas) {
		c.label = enabled
	}
}

// Canvas is an in-memory raster surface. It is not safe for concurrent use;
// like the capture machine it serves, it belongs to one session.
type Canvas struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
	style  Style
	label  bool
}

// NewCanvas creates a w x h surface filled with the background color.
// Non-positive dimensions fall back to the defaults.
func NewCanvas(w, h int, opts ...CanvasOption) *Canvas {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	c := &Canvas{
		img:    img,
		dasher: rasterx.NewDasher(w, h, scanner),
		style:  DefaultStyle(),
		label:  true,
	}

	for _, opt := range opts {
		opt(c)
	}

	_ = c.Clear()
	return c
}

// Bounds returns the surface rectangle in local coordinates.
func (c *Canvas) Bounds() model.Bounds {
	b := c.img.Bounds()
	return model.Bounds{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear fills the whole surface with the background color.
func (c *Canvas) Clear() error {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.style.Background), image.Point{}, draw.Src)
	return nil
}

// DrawSegment strokes one round-capped pen segment.
func (c *Canvas) DrawSegment(seg model.Segment) error {
	if !seg.From.Finite() || !seg.To.Finite() {
		return fmt.Errorf("%w: non-finite segment", ErrRender)
	}

	c.pen(c.style.StrokeWidth, nil)
	c.dasher.SetColor(c.style.Stroke)
	c.dasher.Start(rasterx.ToFixedP(seg.From.X, seg.From.Y))
	c.dasher.Line(rasterx.ToFixedP(seg.To.X, seg.To.Y))
	c.dasher.Stop(false)
	c.dasher.Draw()
	return nil
}

// DrawResult overlays the fitted circle and, when enabled, a score caption.
// Unfitted results only get the caption.
func (c *Canvas) DrawResult(res scoring.Result) error {
	if res.Fitted {
		if !res.Center.Finite() || res.Radius <= 0 {
			return fmt.Errorf("%w: invalid fitted circle", ErrRender)
		}
		c.pen(c.style.FitWidth, c.style.FitDash)
		c.dasher.SetColor(c.style.Fit)
		rasterx.AddCircle(res.Center.X, res.Center.Y, res.Radius, c.dasher)
		c.dasher.Draw()
	}

	if c.label {
		c.caption(fmt.Sprintf("%d  %s", res.Score, res.Feedback))
	}
	return nil
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the surface as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("%w: encode png: %w", ErrRender, err)
	}
	return nil
}

// PNG returns the surface encoded as PNG.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Canvas) pen(width float64, dashes []float64) {
	c.dasher.Clear()
	c.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
		dashes, 0,
	)
}

func (c *Canvas) caption(text string) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.style.Text),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	drawer.Dot = fixed.P(12, 12+ascent)
	drawer.DrawString(text)
}
