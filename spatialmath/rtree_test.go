package spatialmath_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/spatialmath"
)

func buildTestRTree() *spatialmath.RTree {
	pts := make([]spatialmath.KDPoint, 0, 50)
	for i := 0; i < 50; i++ {
		pts = append(pts, spatialmath.KDPoint{
			Point:   spatialmath.NewVec2(float64(i), float64(i*2)),
			Payload: i,
		})
	}
	return spatialmath.NewRTree(pts)
}

func TestRTreeLen(t *testing.T) {
	tree := buildTestRTree()
	test.That(t, tree.Len(), test.ShouldEqual, 50)
}

func TestRTreeNearest(t *testing.T) {
	tree := buildTestRTree()
	got, ok := tree.Nearest(spatialmath.NewVec2(10.1, 20.1))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got.Payload, test.ShouldEqual, 10)
}

func TestRTreeKNearestOrdering(t *testing.T) {
	tree := buildTestRTree()
	got := tree.KNearest(spatialmath.NewVec2(0, 0), 3)
	test.That(t, len(got), test.ShouldEqual, 3)
	test.That(t, got[0].Payload, test.ShouldEqual, 0)
}

func TestRTreeEmpty(t *testing.T) {
	tree := spatialmath.NewRTree(nil)
	test.That(t, tree.Len(), test.ShouldEqual, 0)
	_, ok := tree.Nearest(spatialmath.NewVec2(0, 0))
	test.That(t, ok, test.ShouldBeFalse)
}
