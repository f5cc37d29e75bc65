package model

// Stroke is the time-ordered trace of pointer positions from press to release.
// It only grows until it is sealed; after that Append is a no-op.
type Stroke struct {
	points []Point
	sealed bool
}

// NewStroke starts a stroke whose first sample is first.
func NewStroke(first Point) *Stroke {
	return &Stroke{points: []Point{first}}
}

// Append adds p to the end of the stroke. It returns false once the stroke is sealed.
func (s *Stroke) Append(p Point) bool {
	if s.sealed {
		return false
	}
	s.points = append(s.points, p)
	return true
}

// Len returns the number of samples.
func (s *Stroke) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Last returns the most recent sample.
func (s *Stroke) Last() (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// Seal marks the stroke read-only and returns a snapshot of its samples.
func (s *Stroke) Seal() []Point {
	s.sealed = true
	return s.Points()
}

// Sealed reports whether Seal has been called.
func (s *Stroke) Sealed() bool {
	return s != nil && s.sealed
}

// Points returns a copy of the samples.
func (s *Stroke) Points() []Point {
	if s.Len() == 0 {
		return nil
	}
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
