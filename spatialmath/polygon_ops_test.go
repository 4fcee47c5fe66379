package spatialmath_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/spatialmath"
)

func TestSimplifyContourDropsStraightRuns(t *testing.T) {
	loop := []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0),
		spatialmath.NewVec2(1, 0),
		spatialmath.NewVec2(2, 0),
		spatialmath.NewVec2(2, 2),
		spatialmath.NewVec2(0, 2),
	}
	out := spatialmath.SimplifyContour(loop, 0.05, 3.0)
	test.That(t, len(out), test.ShouldBeLessThan, len(loop))
}

func TestSimplifyContourKeepsTightCorners(t *testing.T) {
	loop := []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0),
		spatialmath.NewVec2(2, 0),
		spatialmath.NewVec2(2, 2),
		spatialmath.NewVec2(0, 2),
	}
	out := spatialmath.SimplifyContour(loop, 0.05, 0.01)
	test.That(t, len(out), test.ShouldEqual, 4)
}

func TestConvexSplitLeavesConvexPolygonAlone(t *testing.T) {
	square := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(2, 0),
		spatialmath.NewVec2(2, 2), spatialmath.NewVec2(0, 2),
	}}
	parts := spatialmath.ConvexSplit(square)
	test.That(t, len(parts), test.ShouldEqual, 1)
}

func TestConvexSplitSplitsLShape(t *testing.T) {
	// An L-shaped polygon, concave at (2,2).
	lshape := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0),
		spatialmath.NewVec2(4, 0),
		spatialmath.NewVec2(4, 2),
		spatialmath.NewVec2(2, 2),
		spatialmath.NewVec2(2, 4),
		spatialmath.NewVec2(0, 4),
	}}
	parts := spatialmath.ConvexSplit(lshape)
	test.That(t, len(parts), test.ShouldBeGreaterThan, 1)
	for _, p := range parts {
		test.That(t, len(p.Vertices), test.ShouldBeGreaterThanOrEqualTo, 3)
	}
}
