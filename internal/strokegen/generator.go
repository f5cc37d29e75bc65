// Package strokegen produces synthetic strokes and pointer scripts for demos,
// fixtures and tests.
package strokegen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/enso/internal/domain/model"
)

// Shape names accepted by Generate.
const (
	ShapeCircle  = "circle"
	ShapeWobbly  = "wobbly"
	ShapeJagged  = "jagged"
	ShapeOpen    = "open"
	ShapeEllipse = "ellipse"
	ShapeTap     = "tap"
)

// Circle samples segments+1 points on a circle, starting at startAngle
// (radians, y down) and ending where it started.
func Circle(center model.Point, radius float64, segments int, startAngle float64) []model.Point {
	return Arc(center, radius, segments, startAngle, 2*math.Pi)
}

// Arc samples segments+1 points along sweep radians of a circle.
func Arc(center model.Point, radius float64, segments int, startAngle, sweep float64) []model.Point {
	if segments < 1 {
		segments = 1
	}
	pts := make([]model.Point, 0, segments+1)
	for k := 0; k <= segments; k++ {
		t := startAngle + sweep*float64(k)/float64(segments)
		pts = append(pts, model.Point{
			X: center.X + radius*math.Cos(t),
			Y: center.Y + radius*math.Sin(t),
		})
	}
	return pts
}

// Ellipse samples a closed ellipse with the given semi-axes.
func Ellipse(center model.Point, rx, ry float64, segments int) []model.Point {
	if segments < 1 {
		segments = 1
	}
	pts := make([]model.Point, 0, segments+1)
	for k := 0; k <= segments; k++ {
		t := 2 * math.Pi * float64(k) / float64(segments)
		pts = append(pts, model.Point{X: center.X + rx*math.Cos(t), Y: center.Y + ry*math.Sin(t)})
	}
	return pts
}

// Jagged samples a closed circle whose radius alternates between
// radius+amplitude and radius-amplitude on consecutive samples.
func Jagged(center model.Point, radius float64, segments int, amplitude float64) []model.Point {
	if segments < 1 {
		segments = 1
	}
	pts := make([]model.Point, 0, segments+1)
	for k := 0; k <= segments; k++ {
		t := 2 * math.Pi * float64(k) / float64(segments)
		r := radius - amplitude
		if k%2 == 0 {
			r = radius + amplitude
		}
		pts = append(pts, model.Point{X: center.X + r*math.Cos(t), Y: center.Y + r*math.Sin(t)})
	}
	return pts
}

// Wobbly samples a closed circle with seeded random radial noise of up to
// amplitude pixels. The same seed always yields the same stroke.
func Wobbly(center model.Point, radius float64, segments int, amplitude float64, seed int64) []model.Point {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic noise, not security sensitive
	pts := Circle(center, radius, segments, 0)
	for i := range pts[:len(pts)-1] {
		t := 2 * math.Pi * float64(i) / float64(segments)
		dr := (rng.Float64()*2 - 1) * amplitude
		pts[i].X += dr * math.Cos(t)
		pts[i].Y += dr * math.Sin(t)
	}
	pts[len(pts)-1] = pts[0]
	return pts
}

// Tap returns n samples at the same position, like a click with jitter-free input.
func Tap(p model.Point, n int) []model.Point {
	pts := make([]model.Point, n)
	for i := range pts {
		pts[i] = p
	}
	return pts
}

// Generate builds one of the named shapes around center.
func Generate(shape string, center model.Point, radius float64, segments int, seed int64) ([]model.Point, error) {
	switch shape {
	case ShapeCircle:
		return Circle(center, radius, segments, -math.Pi/2), nil
	case ShapeWobbly:
		return Wobbly(center, radius, segments, radius*0.08, seed), nil
	case ShapeJagged:
		return Jagged(center, radius, segments, radius*0.1), nil
	case ShapeOpen:
		return Arc(center, radius, segments, 0, 1.5*math.Pi), nil
	case ShapeEllipse:
		return Ellipse(center, radius, radius*0.6, segments), nil
	case ShapeTap:
		return Tap(center, segments), nil
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

// PointerScript turns a stroke into the event sequence a drawing surface
// would emit: one down, a move per remaining sample, then up.
func PointerScript(points []model.Point) []model.PointerEvent {
	if len(points) == 0 {
		return nil
	}
	events := make([]model.PointerEvent, 0, len(points)+1)
	events = append(events, model.PointerEvent{Type: model.PointerDown, X: points[0].X, Y: points[0].Y})
	for _, p := range points[1:] {
		events = append(events, model.PointerEvent{Type: model.PointerMove, X: p.X, Y: p.Y})
	}
	return append(events, model.PointerEvent{Type: model.PointerUp})
}
