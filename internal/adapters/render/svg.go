package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
)

// SVGOptions controls SVG document generation.
type SVGOptions struct {
	Width  int
	Height int
	Style  Style
}

// DefaultSVGOptions returns the default surface size and style.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: DefaultWidth, Height: DefaultHeight, Style: DefaultStyle()}
}

// SVG builds a standalone document showing the stroke and, when the result
// was fitted, the dashed fitted circle.
func SVG(points []model.Point, res scoring.Result, opts SVGOptions) []byte {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	st := opts.Style

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, opts.Width, opts.Height, hex(st.Background))

	if d := pathData(points); d != "" {
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`,
			d, hex(st.Stroke), num(st.StrokeWidth))
	}

	if res.Fitted && res.Center.Finite() && res.Radius > 0 {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"`,
			num(res.Center.X), num(res.Center.Y), num(res.Radius), hex(st.Fit), num(st.FitWidth))
		if len(st.FitDash) > 0 {
			dash := make([]string, len(st.FitDash))
			for i, v := range st.FitDash {
				dash[i] = num(v)
			}
			fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(dash, ","))
		}
		b.WriteString(`/>`)
	}

	b.WriteString(`</svg>`)
	return []byte(b.String())
}

// RasterizeSVG draws an SVG document onto a w x h image and encodes it as PNG.
func RasterizeSVG(ctx context.Context, svg []byte, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrRender, w, h)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("%w: parse svg: %w", ErrRender, err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(w)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func pathData(points []model.Point) string {
	var b strings.Builder
	for _, p := range points {
		if !p.Finite() {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
