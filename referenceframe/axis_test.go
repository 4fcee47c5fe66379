package referenceframe_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/referenceframe"
	"github.com/ill-paths/tasengine/spatialmath"
)

func TestAxisAngleRoundTrip(t *testing.T) {
	a := referenceframe.NewAxis("mono")
	a.SetAngle(referenceframe.AngleOut, 1.25)
	test.That(t, a.Angle(referenceframe.AngleOut), test.ShouldEqual, 1.25)
	test.That(t, a.Angle(referenceframe.AngleIn), test.ShouldEqual, 0.0)
}

func TestAxisWithinLimitUnconstrained(t *testing.T) {
	a := referenceframe.NewAxis("mono")
	test.That(t, a.WithinLimit(referenceframe.AngleOut), test.ShouldBeTrue)
}

func TestAxisWithinLimit(t *testing.T) {
	a := referenceframe.NewAxis("sample")
	a.Limits[referenceframe.AngleOut] = referenceframe.Limit{Lower: -math.Pi, Upper: math.Pi}
	a.SetAngle(referenceframe.AngleOut, 0)
	test.That(t, a.WithinLimit(referenceframe.AngleOut), test.ShouldBeTrue)
	a.SetAngle(referenceframe.AngleOut, 10)
	test.That(t, a.WithinLimit(referenceframe.AngleOut), test.ShouldBeFalse)
}

func TestAxisComponentsFor(t *testing.T) {
	a := referenceframe.NewAxis("analyser")
	g, err := spatialmath.NewCylinder(spatialmath.NewZeroPose(), 0.1, 0.2, "crystal")
	test.That(t, err, test.ShouldBeNil)
	a.CompsInternal = append(a.CompsInternal, g)
	test.That(t, len(a.ComponentsFor(referenceframe.AngleInternal)), test.ShouldEqual, 1)
	test.That(t, len(a.ComponentsFor(referenceframe.AngleIn)), test.ShouldEqual, 0)
}

func TestLimitContains(t *testing.T) {
	l := referenceframe.Limit{Lower: 0, Upper: 1}
	test.That(t, l.Contains(0.5), test.ShouldBeTrue)
	test.That(t, l.Contains(1.5), test.ShouldBeFalse)
	test.That(t, l.Contains(0), test.ShouldBeTrue)
	test.That(t, l.Contains(1), test.ShouldBeTrue)
}
