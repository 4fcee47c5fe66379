package spatialmath_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/spatialmath"
)

func TestVec2Dist(t *testing.T) {
	a := spatialmath.NewVec2(0, 0)
	b := spatialmath.NewVec2(3, 4)
	test.That(t, spatialmath.Dist(a, b), test.ShouldEqual, 5.0)
	test.That(t, spatialmath.Dist2(a, b), test.ShouldEqual, 25.0)
}

func TestAlmostEqual(t *testing.T) {
	a := spatialmath.NewVec2(1, 1)
	b := spatialmath.NewVec2(1+1e-9, 1)
	test.That(t, spatialmath.AlmostEqual(a, b, 1e-6), test.ShouldBeTrue)
	test.That(t, spatialmath.AlmostEqual(a, spatialmath.NewVec2(2, 1), 1e-6), test.ShouldBeFalse)
}

func TestWeightedDist(t *testing.T) {
	a := spatialmath.NewVec2(0, 0)
	b := spatialmath.NewVec2(1, 0)
	test.That(t, spatialmath.WeightedDist(a, b, 2.0, 1.0), test.ShouldEqual, 2.0)
}

func TestLerp(t *testing.T) {
	a := spatialmath.NewVec2(0, 0)
	b := spatialmath.NewVec2(10, 10)
	mid := spatialmath.Lerp(a, b, 0.5)
	test.That(t, mid.X, test.ShouldEqual, 5.0)
	test.That(t, mid.Y, test.ShouldEqual, 5.0)
}

func TestLerpEndpoints(t *testing.T) {
	a := spatialmath.NewVec2(1, 2)
	b := spatialmath.NewVec2(3, 4)
	test.That(t, math.Abs(spatialmath.Lerp(a, b, 0).X-a.X), test.ShouldBeLessThan, 1e-12)
	test.That(t, math.Abs(spatialmath.Lerp(a, b, 1).X-b.X), test.ShouldBeLessThan, 1e-12)
}
