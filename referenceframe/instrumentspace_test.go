package referenceframe_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/ill-paths/tasengine/referenceframe"
	"github.com/ill-paths/tasengine/spatialmath"
)

func buildSpace(t *testing.T, wallCenter spatialmath.Vec2, wallRadius float64) (*referenceframe.InstrumentSpace, *referenceframe.Axis) {
	mono := referenceframe.NewAxis("mono")
	crystal, err := spatialmath.NewCylinder(spatialmath.NewZeroPose(), 0.2, 0.1, "mono-crystal")
	test.That(t, err, test.ShouldBeNil)
	mono.CompsOut = append(mono.CompsOut, crystal)
	mono.Pos = spatialmath.NewVec2(0, 0)

	sample := referenceframe.NewAxis("sample")
	sample.Pos = spatialmath.NewVec2(5, 0)
	analyser := referenceframe.NewAxis("analyser")
	analyser.Pos = spatialmath.NewVec2(5, 0)

	inst, err := referenceframe.NewInstrument(mono, sample, analyser)
	test.That(t, err, test.ShouldBeNil)

	wallPose := spatialmath.NewPose(r3.Vector{X: wallCenter.X, Y: wallCenter.Y}, 0)
	wall, err := spatialmath.NewCylinder(wallPose, wallRadius, 1, "wall")
	test.That(t, err, test.ShouldBeNil)

	space := referenceframe.NewInstrumentSpace(10, 10, []*spatialmath.Geometry{wall}, inst)
	return space, mono
}

func TestInstrumentSpaceNoCollisionWhenClear(t *testing.T) {
	space, _ := buildSpace(t, spatialmath.NewVec2(100, 100), 0.01)
	test.That(t, space.CheckCollision2D(), test.ShouldBeFalse)
}

func TestInstrumentSpaceDetectsWallCollision(t *testing.T) {
	space, _ := buildSpace(t, spatialmath.NewVec2(0, 0), 5.0)
	test.That(t, space.CheckCollision2D(), test.ShouldBeTrue)
}

func TestInstrumentSpaceExclusionSuppressesCollision(t *testing.T) {
	space, _ := buildSpace(t, spatialmath.NewVec2(0, 0), 5.0)
	space.Exclude("mono-crystal", "wall")
	test.That(t, space.CheckCollision2D(), test.ShouldBeFalse)
}

func TestInstrumentSpaceAngularLimits(t *testing.T) {
	space, mono := buildSpace(t, spatialmath.NewVec2(100, 100), 0.01)
	test.That(t, space.CheckAngularLimits(), test.ShouldBeTrue)
	mono.Limits[referenceframe.AngleOut] = referenceframe.Limit{Lower: -0.1, Upper: 0.1}
	space.Instrument.SetAngle(referenceframe.AxisMonochromator, referenceframe.AngleOut, 1.0)
	test.That(t, space.CheckAngularLimits(), test.ShouldBeFalse)
}

func TestInstrumentSpaceCloneIsIndependentAndPreservesExclusions(t *testing.T) {
	space, _ := buildSpace(t, spatialmath.NewVec2(0, 0), 5.0)
	space.Exclude("mono-crystal", "wall")
	test.That(t, space.CheckCollision2D(), test.ShouldBeFalse)

	clone := space.Clone()
	test.That(t, clone.CheckCollision2D(), test.ShouldBeFalse)

	clone.Instrument.SetAngle(referenceframe.AxisMonochromator, referenceframe.AngleOut, 2.0)
	test.That(t, space.Instrument.Axis(referenceframe.AxisMonochromator).Angle(referenceframe.AngleOut), test.ShouldEqual, 0.0)
}
