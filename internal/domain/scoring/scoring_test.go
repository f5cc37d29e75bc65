package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/enso/internal/domain/model"
	scoring "github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/internal/strokegen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCircleScorer_Score(t *testing.T) {
	Convey("Given a new circle scorer", t, func() {
		scorer := scoring.NewCircleScorer()

		Convey("When scoring a densely sampled closed circle", func() {
			pts := strokegen.Circle(model.Point{X: 50, Y: 50}, 40, 720, 0)
			result := scorer.Score(pts)

			Convey("Then it should be a perfect 100", func() {
				So(result.Score, ShouldEqual, 100)
				So(result.Feedback, ShouldEqual, scoring.Perfect)
				So(result.Fitted, ShouldBeTrue)
			})

			Convey("And the fitted circle should match the drawn one", func() {
				So(result.Center.X, ShouldAlmostEqual, 50, 0.1)
				So(result.Center.Y, ShouldAlmostEqual, 50, 0.1)
				So(result.Radius, ShouldAlmostEqual, 40, 0.01)
				So(result.ClosingDistance, ShouldBeLessThan, 1e-9)
				So(result.Closure, ShouldAlmostEqual, 100, 1e-6)
				So(result.Points, ShouldEqual, 721)
			})
		})

		Convey("When scoring a coarse closed circle", func() {
			// The repeated closing sample nudges the centroid off center.
			result := scorer.Score(strokegen.Circle(model.Point{X: 50, Y: 50}, 40, 36, 0))

			Convey("Then it should still grade as perfect", func() {
				So(result.Score, ShouldEqual, 96)
				So(result.Feedback, ShouldEqual, scoring.Perfect)
			})
		})

		Convey("When scoring an open three-quarter arc", func() {
			pts := strokegen.Arc(model.Point{X: 200, Y: 200}, 100, 60, 0, 1.5*math.Pi)
			result := scorer.Score(pts)

			Convey("Then the closure penalty should bottom out", func() {
				So(result.Closure, ShouldEqual, 0)
				So(result.Score, ShouldEqual, 33)
				So(result.Feedback, ShouldEqual, scoring.TryAgain)
			})
		})

		Convey("When scoring the same stroke repeatedly", func() {
			pts := strokegen.Wobbly(model.Point{X: 300, Y: 200}, 120, 90, 10, 7)
			first := scorer.Score(pts)

			Convey("Then every result should be identical", func() {
				for i := 0; i < 5; i++ {
					So(scorer.Score(pts), ShouldResemble, first)
				}
			})
		})
	})
}

func TestCircleScorer_DegenerateInput(t *testing.T) {
	Convey("Given a new circle scorer", t, func() {
		scorer := scoring.NewCircleScorer()

		Convey("When the stroke is shorter than the scoring threshold", func() {
			Convey("Then every length below 20 should be too small", func() {
				full := strokegen.Jagged(model.Point{X: 10, Y: 10}, 30, 40, 3)
				for n := 0; n < scoring.MinScoringPoints; n++ {
					result := scorer.Score(full[:n])
					So(result.Score, ShouldEqual, 0)
					So(result.Feedback, ShouldEqual, scoring.TooSmall)
					So(result.Fitted, ShouldBeFalse)
					So(result.Points, ShouldEqual, n)
				}
			})
		})

		Convey("When the stroke is nil", func() {
			result := scorer.Score(nil)

			Convey("Then it should be too small", func() {
				So(result, ShouldResemble, scoring.Degenerate(0))
			})
		})

		Convey("When all points coincide", func() {
			result := scorer.Score(strokegen.Tap(model.Point{X: 10, Y: 10}, 25))

			Convey("Then it should short-circuit without NaN or Inf", func() {
				So(result.Score, ShouldEqual, 0)
				So(result.Feedback, ShouldEqual, scoring.TooSmall)
				So(result.Fitted, ShouldBeFalse)
				So(math.IsNaN(result.Radius), ShouldBeFalse)
				So(math.IsNaN(result.Uniformity), ShouldBeFalse)
				So(math.IsInf(result.Closure, 0), ShouldBeFalse)
			})
		})

		Convey("When the length gate is bypassed and points coincide", func() {
			bypass := scoring.NewCircleScorer(scoring.WithMinPoints(1))
			result := bypass.Score(strokegen.Tap(model.Point{X: 3, Y: 4}, 2))

			Convey("Then it should still be degenerate", func() {
				So(result.Feedback, ShouldEqual, scoring.TooSmall)
				So(result.Score, ShouldEqual, 0)
			})
		})
	})
}

func TestCircleScorer_Monotonicity(t *testing.T) {
	Convey("Given strokes with growing radial spread", t, func() {
		scorer := scoring.NewCircleScorer()
		center := model.Point{X: 200, Y: 200}

		Convey("When closure and sample count are held fixed", func() {
			var scores []int
			var spreads []float64
			for _, amp := range []float64{0, 1, 2, 4, 8, 16, 32} {
				r := scorer.Score(strokegen.Jagged(center, 100, 72, amp))
				So(r.ClosingDistance, ShouldBeLessThan, 1e-9)
				scores = append(scores, r.Score)
				spreads = append(spreads, r.RadialStdDev)
			}

			Convey("Then the score should never increase", func() {
				for i := 1; i < len(scores); i++ {
					So(spreads[i], ShouldBeGreaterThan, spreads[i-1])
					So(scores[i], ShouldBeLessThanOrEqualTo, scores[i-1])
				}
				So(scores[0], ShouldEqual, 98)
				So(scores[len(scores)-1], ShouldEqual, 33)
			})
		})
	})
}

func TestCircleScorer_Clamping(t *testing.T) {
	Convey("Given adversarial strokes", t, func() {
		scorer := scoring.NewCircleScorer()

		Convey("When the points form a straight line", func() {
			pts := make([]model.Point, 30)
			for i := range pts {
				pts[i] = model.Point{X: float64(i) * 10}
			}
			result := scorer.Score(pts)

			Convey("Then both sub-scores should clamp at zero", func() {
				So(result.Uniformity, ShouldEqual, 0)
				So(result.Closure, ShouldEqual, 0)
				So(result.Score, ShouldEqual, 0)
				So(result.Feedback, ShouldEqual, scoring.TryAgain)
				So(result.Fitted, ShouldBeTrue)
			})
		})

		Convey("When one outlier dominates", func() {
			pts := append(strokegen.Tap(model.Point{}, 24), model.Point{X: 1000, Y: 1000})
			result := scorer.Score(pts)

			Convey("Then the score should stay in range", func() {
				So(result.Score, ShouldEqual, 0)
			})
		})

		Convey("When the weights overshoot", func() {
			heavy := scoring.NewCircleScorer(scoring.WithWeights(1, 1))
			result := heavy.Score(strokegen.Circle(model.Point{X: 50, Y: 50}, 40, 720, 0))

			Convey("Then the score should clamp at 100", func() {
				So(result.Score, ShouldEqual, 100)
			})
		})

		Convey("When random strokes are scored", func() {
			Convey("Then every score should be an integer within [0,100]", func() {
				for seed := int64(0); seed < 20; seed++ {
					pts := strokegen.Wobbly(model.Point{X: 100, Y: 100}, 60, 40, float64(seed)*5, seed)
					r := scorer.Score(pts)
					So(r.Score, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})
	})
}

func TestCircleScorer_Options(t *testing.T) {
	Convey("Given a scorer with a lowered gate", t, func() {
		scorer := scoring.NewCircleScorer(scoring.WithMinPoints(5))

		Convey("When a short closed stroke is scored", func() {
			result := scorer.Score(strokegen.Circle(model.Point{X: 0, Y: 0}, 10, 8, 0))

			Convey("Then it should be fitted", func() {
				So(result.Fitted, ShouldBeTrue)
				So(result.Points, ShouldEqual, 9)
			})
		})
	})

	Convey("Given a scorer with harsher penalties", t, func() {
		base := scoring.NewCircleScorer()
		harsh := scoring.NewCircleScorer(scoring.WithPenalties(600, 400))
		pts := strokegen.Jagged(model.Point{X: 0, Y: 0}, 100, 72, 4)

		Convey("Then the same stroke should score lower", func() {
			So(harsh.Score(pts).Score, ShouldBeLessThan, base.Score(pts).Score)
		})
	})

	Convey("Given invalid option values", t, func() {
		scorer := scoring.NewCircleScorer(
			scoring.WithMinPoints(-1),
			scoring.WithPenalties(0, -5),
			scoring.WithWeights(-1, 0.5),
		)
		def := scoring.NewCircleScorer()
		pts := strokegen.Jagged(model.Point{X: 0, Y: 0}, 100, 72, 4)

		Convey("Then the defaults should be kept", func() {
			So(scorer.Score(pts), ShouldResemble, def.Score(pts))
			So(scorer.Score(pts[:19]).Feedback, ShouldEqual, scoring.TooSmall)
		})
	})
}
