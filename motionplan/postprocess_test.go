package motionplan_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/motionplan"
	"github.com/ill-paths/tasengine/spatialmath"
)

func TestDecodePathRejectsCollidingPath(t *testing.T) {
	img := emptyImage(20, 20)
	img.Set(10, 10, motionplan.PixelCollision)

	path := &motionplan.InstrumentPath{Pixels: []spatialmath.Vec2{
		spatialmath.NewVec2(5, 5), spatialmath.NewVec2(15, 15),
	}}
	cfg := motionplan.DefaultConfig()
	cfg.VerifyPath = true

	_, err := motionplan.DecodePath(img, nil, path, cfg)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecodePathSubdividesLongSteps(t *testing.T) {
	img := emptyImage(200, 200)
	path := &motionplan.InstrumentPath{Pixels: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(190, 0),
	}}
	cfg := motionplan.DefaultConfig()
	cfg.VerifyPath = false
	cfg.UseMotorSpeeds = false
	cfg.SubdivLen = 0.02

	vertices, err := motionplan.DecodePath(img, nil, path, cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(vertices), test.ShouldBeGreaterThan, 2)
}

func TestDecodePathPassesThroughShortPath(t *testing.T) {
	img := emptyImage(20, 20)
	path := &motionplan.InstrumentPath{Pixels: []spatialmath.Vec2{
		spatialmath.NewVec2(1, 1), spatialmath.NewVec2(2, 2),
	}}
	cfg := motionplan.DefaultConfig()
	cfg.VerifyPath = true
	cfg.SubdivLen = 10 // far larger than the step, no subdivision expected

	vertices, err := motionplan.DecodePath(img, nil, path, cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(vertices), test.ShouldEqual, 2)
}
