package motionplan

import (
	"github.com/ill-paths/tasengine/referenceframe"
	"github.com/ill-paths/tasengine/spatialmath"
)

// DecodePath converts a pixel-space InstrumentPath into the final ordered
// list of angle-space vertices a caller drives the instrument through: it
// re-verifies every step is collision-free (optional, Cfg.VerifyPath),
// drops the endpoint loop a retraction sometimes introduces, and
// subdivides long steps to Cfg.SubdivLen.
func DecodePath(img *ConfigSpaceImage, space *referenceframe.InstrumentSpace, path *InstrumentPath, cfg Config) ([]Vertex, error) {
	pixels := path.Pixels
	if cfg.VerifyPath {
		if err := verifyPath(img, pixels); err != nil {
			return nil, err
		}
	}

	pixels = removeEndpointLoop(img, pixels, pixelRadius(img, cfg.DirectpathSearchRadius))

	vertices := make([]Vertex, len(pixels))
	for i, p := range pixels {
		a4, a2 := img.ContinuousToAngle(p.X, p.Y)
		vertices[i] = Vertex{A4: a4, A2: a2}
	}

	return subdivide(vertices, space, cfg), nil
}

// verifyPath re-checks every sampled pixel of every path segment for
// collision, in case upstream roundoff (subpixel retraction points,
// discretized parabolic bisectors) sneaked a forbidden pixel into the path.
func verifyPath(img *ConfigSpaceImage, pixels []spatialmath.Vec2) error {
	for i := 0; i+1 < len(pixels); i++ {
		if !segmentFree(img, pixels[i], pixels[i+1]) {
			return NewPlanError(ErrInvalidInput, "postprocess: path verification found a colliding segment", nil)
		}
	}
	return nil
}

// removeEndpointLoop drops path points that double back within radius of
// the start or target, a retraction artifact when the nearest roadmap
// vertex sits behind the starting direction of travel.
func removeEndpointLoop(img *ConfigSpaceImage, pixels []spatialmath.Vec2, radius float64) []spatialmath.Vec2 {
	if len(pixels) < 3 {
		return pixels
	}
	out := append([]spatialmath.Vec2{}, pixels...)

	// Trim from the start: while the third point is reachable from the
	// first by a collision-free straight line and lies no more than radius
	// farther from the first than the second does, drop the second point.
	// The loop below does the same from the target end.
	for len(out) > 2 && spatialmath.Dist(out[0], out[2]) <= radius+spatialmath.Dist(out[0], out[1]) && segmentFree(img, out[0], out[2]) {
		out = append(out[:1], out[2:]...)
	}
	for len(out) > 2 {
		n := len(out)
		if spatialmath.Dist(out[n-1], out[n-3]) <= radius+spatialmath.Dist(out[n-1], out[n-2]) && segmentFree(img, out[n-1], out[n-3]) {
			out = append(out[:n-2], out[n-1])
			continue
		}
		break
	}
	return out
}

// subdivide first merges consecutive input vertices that lie closer together
// than Cfg.SubdivLen, then inserts intermediate vertices so no step exceeds
// Cfg.SubdivLen, measured with the motor-speed-weighted metric when
// Cfg.UseMotorSpeeds is set (so a fast axis tolerates coarser subdivision
// than a slow one).
func subdivide(vertices []Vertex, space *referenceframe.InstrumentSpace, cfg Config) []Vertex {
	if cfg.SubdivLen <= 0 || len(vertices) < 2 {
		return vertices
	}

	xScale, yScale := 1.0, 1.0
	if cfg.UseMotorSpeeds && space != nil {
		if s := space.Instrument.Axis(referenceframe.AxisSample).Speed; s > 0 {
			xScale = 1 / s
		}
		if s := space.Instrument.Axis(referenceframe.AxisAnalyser).Speed; s > 0 {
			yScale = 1 / s
		}
	}
	stepLen := func(a, b Vertex) float64 {
		return spatialmath.WeightedDist(spatialmath.NewVec2(a.A4, a.A2), spatialmath.NewVec2(b.A4, b.A2), xScale, yScale)
	}

	vertices = mergeShortSteps(vertices, stepLen, cfg.SubdivLen)

	var out []Vertex
	out = append(out, vertices[0])
	for i := 0; i+1 < len(vertices); i++ {
		a, b := vertices[i], vertices[i+1]
		length := stepLen(a, b)
		if length <= cfg.SubdivLen {
			out = append(out, b)
			continue
		}
		steps := int(length/cfg.SubdivLen) + 1
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, Vertex{
				A4: a.A4 + (b.A4-a.A4)*t,
				A2: a.A2 + (b.A2-a.A2)*t,
			})
		}
	}

	return out
}

// mergeShortSteps drops a vertex whose distance to its predecessor falls
// below minLen, keeping the endpoints of the path intact.
func mergeShortSteps(vertices []Vertex, stepLen func(a, b Vertex) float64, minLen float64) []Vertex {
	if len(vertices) < 3 {
		return vertices
	}
	out := append([]Vertex{}, vertices[0])
	for i := 1; i < len(vertices)-1; i++ {
		if stepLen(out[len(out)-1], vertices[i]) < minLen {
			continue
		}
		out = append(out, vertices[i])
	}
	out = append(out, vertices[len(vertices)-1])
	return out
}
