// Package scoring fits a circle to a finished stroke and grades how round it is.
package scoring

import (
	"math"

	"github.com/okian/enso/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// MinScoringPoints is the shortest stroke the scorer will fit. It is
	// independent of the capture threshold that decides whether a stroke was
	// deliberate at all.
	MinScoringPoints = 20

	defaultUniformityPenalty = 300
	defaultClosurePenalty    = 200
	defaultUniformityWeight  = 0.7
	defaultClosureWeight     = 0.3
	maxScoreValue            = 100
)

// Option applies a configuration option to the CircleScorer.
type Option func(*CircleScorer)

// WithMinPoints sets the scorer's own length gate.
func WithMinPoints(n int) Option {
	return func(s *CircleScorer) {
		if n > 0 {
			s.minPoints = n
		}
	}
}

// WithPenalties sets the calibration factors applied to the relative radial
// spread and the relative closing gap.
func WithPenalties(uniformity, closure float64) Option {
	return func(s *CircleScorer) {
		if uniformity > 0 {
			s.uniformityPenalty = uniformity
		}
		if closure > 0 {
			s.closurePenalty = closure
		}
	}
}

// WithWeights sets how uniformity and closure are blended into the final score.
func WithWeights(uniformity, closure float64) Option {
	return func(s *CircleScorer) {
		if uniformity >= 0 && closure >= 0 && uniformity+closure > 0 {
			s.uniformityWeight = uniformity
			s.closureWeight = closure
		}
	}
}

// Result is the outcome of scoring one sealed stroke.
//
// Center and Radius describe the fitted circle: the centroid of the samples and
// their mean distance to it. They are only meaningful when Fitted is true.
type Result struct {
	Score    int
	Feedback Feedback
	Center   model.Point
	Radius   float64
	Fitted   bool

	// Diagnostics. They never influence Score beyond the formula above.
	Points          int
	RadialStdDev    float64
	ClosingDistance float64
	Uniformity      float64
	Closure         float64
}

// Scorer grades a sealed stroke.
type Scorer interface {
	// Score is pure: identical input always yields an identical Result.
	Score(points []model.Point) Result
}

// CircleScorer implements Scorer using a centroid fit.
type CircleScorer struct {
	minPoints         int
	uniformityPenalty float64
	closurePenalty    float64
	uniformityWeight  float64
	closureWeight     float64
}

// NewCircleScorer creates a scorer with the default calibration.
func NewCircleScorer(opts ...Option) *CircleScorer {
	s := &CircleScorer{
		minPoints:         MinScoringPoints,
		uniformityPenalty: defaultUniformityPenalty,
		closurePenalty:    defaultClosurePenalty,
		uniformityWeight:  defaultUniformityWeight,
		closureWeight:     defaultClosureWeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Degenerate returns the "too small" result for a stroke of n samples.
func Degenerate(n int) Result {
	return Result{Score: 0, Feedback: TooSmall, Points: n}
}

// Score computes the fitted circle and the blended roundness score.
func (s *CircleScorer) Score(points []model.Point) Result {
	n := len(points)
	if n < s.minPoints || n == 0 {
		return Degenerate(n)
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	center := model.Point{X: sumX / float64(n), Y: sumY / float64(n)}

	distances := make([]float64, n)
	var sumD float64
	for i, p := range points {
		distances[i] = p.Dist(center)
		sumD += distances[i]
	}
	radius := sumD / float64(n)

	// All samples coincide: there is no circle to compare against.
	if radius == 0 || !finite(radius) {
		return Degenerate(n)
	}

	var sumSq float64
	for _, d := range distances {
		sumSq += (d - radius) * (d - radius)
	}
	stdDev := math.Sqrt(sumSq / float64(n))

	closing := points[0].Dist(points[n-1])

	uniformity := math.Max(0, maxScoreValue-(stdDev/radius)*s.uniformityPenalty)
	closure := math.Max(0, maxScoreValue-(closing/radius)*s.closurePenalty)

	blended := uniformity*s.uniformityWeight + closure*s.closureWeight
	if !finite(blended) {
		return Degenerate(n)
	}
	score := clampScore(int(math.Round(blended)))

	return Result{
		Score:           score,
		Feedback:        Classify(score),
		Center:          center,
		Radius:          radius,
		Fitted:          true,
		Points:          n,
		RadialStdDev:    stdDev,
		ClosingDistance: closing,
		Uniformity:      uniformity,
		Closure:         closure,
	}
}

func clampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > maxScoreValue:
		return maxScoreValue
	default:
		return v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
