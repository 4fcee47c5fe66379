package motionplan_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/motionplan"
	"github.com/ill-paths/tasengine/spatialmath"
)

// emptyImage returns a fully free ConfigSpaceImage of the given size.
func emptyImage(w, h int) *motionplan.ConfigSpaceImage {
	domain := motionplan.Domain{StartA4: 0, EndA4: float64(w) * 0.01, DA4: 0.01, StartA2: 0, EndA2: float64(h) * 0.01, DA2: 0.01}
	return motionplan.NewConfigSpaceImage(domain, 1, 1)
}

func TestFindPathDirectShortcutWhenClear(t *testing.T) {
	img := emptyImage(50, 50)
	cfg := motionplan.DefaultConfig()
	cfg.Directpath = true
	cfg.DirectpathSearchRadius = 1.0 // radians, generous enough to cover the whole image

	start := motionplan.Vertex{}
	a4s, a2s := img.PixelToAngle(5, 5)
	a4t, a2t := img.PixelToAngle(40, 40)
	start.A4, start.A2 = a4s, a2s

	path, err := motionplan.FindPath(motionplan.PlanRequest{
		Image: img, StartA4: a4s, StartA2: a2s, TargetA4: a4t, TargetA2: a2t, Cfg: cfg,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path.Pixels), test.ShouldEqual, 2)
}

func TestFindPathRejectsCollidingStart(t *testing.T) {
	img := emptyImage(20, 20)
	img.Set(5, 5, motionplan.PixelCollision)
	a4s, a2s := img.PixelToAngle(5, 5)
	a4t, a2t := img.PixelToAngle(15, 15)

	_, err := motionplan.FindPath(motionplan.PlanRequest{
		Image: img, StartA4: a4s, StartA2: a2s, TargetA4: a4t, TargetA2: a2t, Cfg: motionplan.DefaultConfig(),
	})
	test.That(t, err, test.ShouldNotBeNil)
	planErr, ok := err.(*motionplan.PlanError)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, planErr.Kind(), test.ShouldEqual, motionplan.ErrInvalidInput)
}

func TestFindPathUnreachableWithEmptyRoadmap(t *testing.T) {
	img := emptyImage(20, 20)
	// Block every direct line between the two corners with a full-width
	// wall, and disable the shortcut, forcing a roadmap search.
	for col := 0; col < 20; col++ {
		img.Set(col, 10, motionplan.PixelCollision)
	}
	cfg := motionplan.DefaultConfig()
	cfg.Directpath = false

	a4s, a2s := img.PixelToAngle(2, 2)
	a4t, a2t := img.PixelToAngle(2, 18)

	res := &motionplan.VoronoiResults{}
	_, err := motionplan.FindPath(motionplan.PlanRequest{
		Image: img, Voronoi: res, StartA4: a4s, StartA2: a2s, TargetA4: a4t, TargetA2: a2t, Cfg: cfg,
	})
	test.That(t, err, test.ShouldNotBeNil)
	planErr, ok := err.(*motionplan.PlanError)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, planErr.Kind(), test.ShouldEqual, motionplan.ErrUnreachable)
}
