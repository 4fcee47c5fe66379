package motionplan_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/motionplan"
)

func buildTestImage(w, h int, wall func(col, row int) bool) *motionplan.ConfigSpaceImage {
	domain := motionplan.Domain{StartA4: 0, EndA4: float64(w) * 0.01, DA4: 0.01, StartA2: 0, EndA2: float64(h) * 0.01, DA2: 0.01}
	img := motionplan.NewConfigSpaceImage(domain, 1, 1)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if wall(col, row) {
				img.Set(col, row, motionplan.PixelCollision)
			}
		}
	}
	return img
}

func TestExtractContoursFindsSingleSquareBlock(t *testing.T) {
	img := buildTestImage(20, 20, func(col, row int) bool {
		return col >= 5 && col <= 10 && row >= 5 && row <= 10
	})
	contours := motionplan.ExtractContours(img)
	test.That(t, len(contours), test.ShouldBeGreaterThan, 0)

	found := false
	for _, c := range contours {
		if !c.Inverted && len(c.Points) > 0 {
			found = true
		}
	}
	test.That(t, found, test.ShouldBeTrue)
}

func TestBuildLineSegmentsExcludesOutermostContour(t *testing.T) {
	// An image that is entirely wall except for a free square produces one
	// inverted outermost contour (the image border) and one normal contour
	// around the free region; only the normal one should contribute
	// segments.
	img := buildTestImage(20, 20, func(col, row int) bool {
		return !(col >= 5 && col <= 14 && row >= 5 && row <= 14)
	})
	contours := motionplan.ExtractContours(img)
	cfg := motionplan.DefaultConfig()
	segments, groups := motionplan.BuildLineSegments(contours, cfg, 0.05, true)
	test.That(t, len(groups), test.ShouldBeLessThan, len(contours)+1)
	test.That(t, len(segments), test.ShouldBeGreaterThan, 0)
}
