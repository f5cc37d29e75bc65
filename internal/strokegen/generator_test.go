package strokegen_test

import (
	"math"
	"testing"

	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/strokegen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerators(t *testing.T) {
	center := model.Point{X: 100, Y: 100}

	Convey("Given the circle generator", t, func() {
		pts := strokegen.Circle(center, 50, 36, 0)

		Convey("Then it should produce a closed ring of samples", func() {
			So(len(pts), ShouldEqual, 37)
			So(pts[0].Dist(pts[36]), ShouldBeLessThan, 1e-9)
			for _, p := range pts {
				So(p.Dist(center), ShouldAlmostEqual, 50, 1e-9)
			}
		})
	})

	Convey("Given the arc generator", t, func() {
		pts := strokegen.Arc(center, 50, 10, 0, math.Pi)

		Convey("Then it should end on the opposite side", func() {
			So(len(pts), ShouldEqual, 11)
			So(pts[10].X, ShouldAlmostEqual, 50, 1e-9)
			So(pts[10].Y, ShouldAlmostEqual, 100, 1e-9)
		})
	})

	Convey("Given the jagged generator", t, func() {
		pts := strokegen.Jagged(center, 50, 20, 5)

		Convey("Then radii should alternate", func() {
			So(pts[0].Dist(center), ShouldAlmostEqual, 55, 1e-9)
			So(pts[1].Dist(center), ShouldAlmostEqual, 45, 1e-9)
		})
	})

	Convey("Given the wobbly generator", t, func() {
		a := strokegen.Wobbly(center, 50, 60, 4, 42)
		b := strokegen.Wobbly(center, 50, 60, 4, 42)

		Convey("Then the same seed should give the same stroke", func() {
			So(a, ShouldResemble, b)
		})

		Convey("And the stroke should be closed", func() {
			So(a[0], ShouldResemble, a[len(a)-1])
		})

		Convey("And noise should stay within the amplitude", func() {
			for _, p := range a {
				So(math.Abs(p.Dist(center)-50), ShouldBeLessThanOrEqualTo, 4+1e-9)
			}
		})
	})

	Convey("Given the named shape generator", t, func() {
		Convey("When the shape is known", func() {
			for _, shape := range []string{
				strokegen.ShapeCircle, strokegen.ShapeWobbly, strokegen.ShapeJagged,
				strokegen.ShapeOpen, strokegen.ShapeEllipse, strokegen.ShapeTap,
			} {
				pts, err := strokegen.Generate(shape, center, 40, 30, 1)
				So(err, ShouldBeNil)
				So(len(pts), ShouldBeGreaterThanOrEqualTo, 30)
			}
		})

		Convey("When the shape is unknown", func() {
			_, err := strokegen.Generate("square", center, 40, 30, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPointerScript(t *testing.T) {
	Convey("Given a stroke of three samples", t, func() {
		pts := []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
		events := strokegen.PointerScript(pts)

		Convey("Then the script should be down, moves, up", func() {
			So(len(events), ShouldEqual, 4)
			So(events[0].Type, ShouldEqual, model.PointerDown)
			So(events[0].Point(), ShouldResemble, pts[0])
			So(events[1].Type, ShouldEqual, model.PointerMove)
			So(events[2].Point(), ShouldResemble, pts[2])
			So(events[3].Type, ShouldEqual, model.PointerUp)
		})
	})

	Convey("Given an empty stroke", t, func() {
		So(strokegen.PointerScript(nil), ShouldBeNil)
	})
}
