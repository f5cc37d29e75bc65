// Package model contains domain models passed between layers.
package model

import "math"

// Point is a sample on the drawing surface in device pixels.
// Origin is the surface's top-left corner, x grows right and y grows down.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Segment is a straight line piece between two consecutive samples.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Bounds is the drawing surface's bounding box in client coordinates.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Local translates client coordinates into surface-local coordinates.
func (b Bounds) Local(clientX, clientY float64) Point {
	return Point{X: clientX - b.Left, Y: clientY - b.Top}
}

// Contains reports whether a surface-local point lies inside the surface.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}
