package spatialmath_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/spatialmath"
)

func TestKDTreeNearest(t *testing.T) {
	pts := []spatialmath.KDPoint{
		{Point: spatialmath.NewVec2(0, 0), Payload: 0},
		{Point: spatialmath.NewVec2(10, 10), Payload: 1},
		{Point: spatialmath.NewVec2(5, 5), Payload: 2},
		{Point: spatialmath.NewVec2(-5, -5), Payload: 3},
	}
	tree := spatialmath.NewKDTree(pts)

	got, ok := tree.Nearest(spatialmath.NewVec2(4.5, 4.5))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got.Payload, test.ShouldEqual, 2)
}

func TestKDTreeEmpty(t *testing.T) {
	tree := spatialmath.NewKDTree(nil)
	_, ok := tree.Nearest(spatialmath.NewVec2(0, 0))
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, tree.DistToNearest(spatialmath.NewVec2(0, 0)), test.ShouldEqual, 0.0)
}

func TestKDTreeDistToNearest(t *testing.T) {
	pts := []spatialmath.KDPoint{
		{Point: spatialmath.NewVec2(0, 0), Payload: 0},
		{Point: spatialmath.NewVec2(3, 4), Payload: 1},
	}
	tree := spatialmath.NewKDTree(pts)
	test.That(t, tree.DistToNearest(spatialmath.NewVec2(0, 0)), test.ShouldEqual, 0.0)
	test.That(t, tree.DistToNearest(spatialmath.NewVec2(3, 0)), test.ShouldEqual, 3.0)
}
