package model_test

import (
	"math"
	"testing"

	model "github.com/okian/enso/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPoint(t *testing.T) {
	convey.Convey("Given two points", t, func() {
		a := model.Point{X: 0, Y: 0}
		b := model.Point{X: 3, Y: 4}

		convey.Convey("Then the distance should be symmetric", func() {
			convey.So(a.Dist(b), convey.ShouldEqual, 5.0)
			convey.So(b.Dist(a), convey.ShouldEqual, 5.0)
			convey.So(a.Dist(a), convey.ShouldEqual, 0.0)
		})

		convey.Convey("Then finite points should be reported as finite", func() {
			convey.So(b.Finite(), convey.ShouldBeTrue)
			convey.So(model.Point{X: math.NaN()}.Finite(), convey.ShouldBeFalse)
			convey.So(model.Point{Y: math.Inf(-1)}.Finite(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a surface bounding box", t, func() {
		b := model.Bounds{Left: 100, Top: 50, Width: 600, Height: 400}

		convey.Convey("When translating client coordinates", func() {
			p := b.Local(400, 150)

			convey.Convey("Then they should become surface-local", func() {
				convey.So(p, convey.ShouldResemble, model.Point{X: 300, Y: 100})
				convey.So(b.Contains(p), convey.ShouldBeTrue)
				convey.So(b.Contains(b.Local(99, 150)), convey.ShouldBeFalse)
				convey.So(b.Contains(b.Local(701, 150)), convey.ShouldBeFalse)
			})
		})
	})
}

func TestStroke(t *testing.T) {
	convey.Convey("Given a new stroke", t, func() {
		s := model.NewStroke(model.Point{X: 1, Y: 1})

		convey.Convey("Then it should hold the first sample", func() {
			convey.So(s.Len(), convey.ShouldEqual, 1)
			last, ok := s.Last()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(last, convey.ShouldResemble, model.Point{X: 1, Y: 1})
		})

		convey.Convey("When appending samples", func() {
			convey.So(s.Append(model.Point{X: 2, Y: 2}), convey.ShouldBeTrue)
			convey.So(s.Append(model.Point{X: 3, Y: 3}), convey.ShouldBeTrue)

			convey.Convey("Then insertion order should be kept", func() {
				pts := s.Points()
				convey.So(len(pts), convey.ShouldEqual, 3)
				convey.So(pts[2], convey.ShouldResemble, model.Point{X: 3, Y: 3})
			})

			convey.Convey("And the returned points should be a copy", func() {
				pts := s.Points()
				pts[0] = model.Point{X: 99, Y: 99}
				convey.So(s.Points()[0], convey.ShouldResemble, model.Point{X: 1, Y: 1})
			})
		})

		convey.Convey("When the stroke is sealed", func() {
			snapshot := s.Seal()

			convey.Convey("Then further appends should be rejected", func() {
				convey.So(s.Sealed(), convey.ShouldBeTrue)
				convey.So(s.Append(model.Point{X: 5, Y: 5}), convey.ShouldBeFalse)
				convey.So(s.Len(), convey.ShouldEqual, 1)
				convey.So(len(snapshot), convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given a nil stroke", t, func() {
		var s *model.Stroke

		convey.Convey("Then it should behave as empty", func() {
			convey.So(s.Len(), convey.ShouldEqual, 0)
			convey.So(s.Points(), convey.ShouldBeNil)
			convey.So(s.Sealed(), convey.ShouldBeFalse)
			_, ok := s.Last()
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestPointerEvent(t *testing.T) {
	convey.Convey("Given pointer events", t, func() {
		convey.Convey("Then known kinds should validate", func() {
			for _, k := range []model.PointerKind{model.PointerDown, model.PointerMove, model.PointerUp, model.PointerLeave, model.PointerReset} {
				convey.So(model.PointerEvent{Type: k, X: 1, Y: 2}.Validate(), convey.ShouldBeNil)
			}
		})

		convey.Convey("Then unknown kinds should be rejected", func() {
			err := model.PointerEvent{Type: "click"}.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "click")
		})

		convey.Convey("Then positional events with NaN coordinates should be rejected", func() {
			convey.So(model.PointerEvent{Type: model.PointerMove, X: math.NaN()}.Validate(), convey.ShouldNotBeNil)
			convey.So(model.PointerEvent{Type: model.PointerUp, X: math.NaN()}.Validate(), convey.ShouldBeNil)
		})
	})
}
