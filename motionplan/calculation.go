package motionplan

import (
	"github.com/ill-paths/tasengine/referenceframe"
	"github.com/ill-paths/tasengine/spatialmath"
)

// Calculation drives the pipeline's state machine: it owns the expensive,
// instrument-geometry-dependent intermediate results
// (the C-space raster, its contours and line segments, and the Voronoi
// roadmap) so that re-planning between a new start and target only re-runs
// the cheap final two stages instead of the whole pipeline.
type Calculation struct {
	cfg     Config
	backend VoronoiBackend
	state   State

	img      *ConfigSpaceImage
	contours []WallContour
	segments []LineSegment
	groups   []LineGroup
	roadmap  *VoronoiResults
	wallIdx  *spatialmath.RTree
}

// NewCalculation returns a fresh calculation in the Ready state, using
// backend for Voronoi construction.
func NewCalculation(cfg Config, backend VoronoiBackend) *Calculation {
	if backend == nil {
		backend = DirectVoronoiBackend{}
	}
	return &Calculation{cfg: cfg, backend: backend, state: Ready}
}

// State returns the calculation's current pipeline position.
func (c *Calculation) State() State { return c.state }

// Build runs the full pipeline (C-space scan, contour extraction, line
// segment emission, Voronoi construction) over space and req.Domain,
// reporting progress through bus. An error moves the calculation to Failed;
// a cancellation through bus returns it to Ready. A successful Build leaves the calculation in the Ready state, primed for
// repeated calls to FindPath.
func (c *Calculation) Build(space *referenceframe.InstrumentSpace, req BuildRequest, bus *ProgressBus) error {
	var progress ProgressFunc
	if bus != nil {
		progress = bus.Fire
	}

	c.state = CspaceBuilding
	img, err := BuildCSpace(space, req, progress)
	if err != nil {
		if pe, ok := err.(*PlanError); ok && pe.Kind() == ErrCancelled {
			c.state = Ready
		} else {
			c.state = Failed
		}
		return err
	}
	c.img = img

	c.state = Contouring
	if progress != nil && !progress(Contouring, 0, "tracing obstacle contours") {
		c.state = Ready
		return NewPlanError(ErrCancelled, "calculation: cancelled before contouring", nil)
	}
	c.contours = ExtractContours(img)

	c.state = Linearizing
	if progress != nil && !progress(Linearizing, 0, "building line segments") {
		c.state = Ready
		return NewPlanError(ErrCancelled, "calculation: cancelled before linearizing", nil)
	}
	angularEps := c.cfg.EpsAngular
	c.segments, c.groups = BuildLineSegments(c.contours, c.cfg, angularEps, true)
	c.wallIdx = buildWallIndex(c.segments)

	c.state = Voronoi
	if progress != nil && !progress(Voronoi, 0, "constructing the voronoi roadmap") {
		c.state = Ready
		return NewPlanError(ErrCancelled, "calculation: cancelled before voronoi construction", nil)
	}
	domain := spatialmath.NewVec2(float64(img.W), float64(img.H))
	roadmap, err := c.backend.Compute(c.segments, c.groups, domain, c.cfg, c.wallIdx, nil)
	if err != nil {
		c.state = Failed
		return err
	}
	c.roadmap = roadmap

	if progress != nil {
		progress(Voronoi, 1, "roadmap ready")
	}
	c.state = Ready
	return nil
}

// buildWallIndex indexes every line-segment endpoint, the point set the
// clearance checks (MinAngularDistToWalls, PenaliseWalls) measure against.
func buildWallIndex(segments []LineSegment) *spatialmath.RTree {
	if len(segments) == 0 {
		return spatialmath.NewRTree(nil)
	}
	pts := make([]spatialmath.KDPoint, 0, len(segments)*2)
	for i, seg := range segments {
		pts = append(pts, spatialmath.KDPoint{Point: seg.A, Payload: 2 * i})
		pts = append(pts, spatialmath.KDPoint{Point: seg.B, Payload: 2*i + 1})
	}
	return spatialmath.NewRTree(pts)
}

// Plan finds a path from (startA4,startA2) to (targetA4,targetA2) using the
// calculation's cached roadmap, then decodes and post-processes it into
// angle-space vertices. Build must have succeeded at least once first.
func (c *Calculation) Plan(space *referenceframe.InstrumentSpace, startA4, startA2, targetA4, targetA2 float64, strategy PathStrategy) ([]Vertex, error) {
	if c.img == nil || c.roadmap == nil {
		return nil, NewPlanError(ErrInvalidInput, "calculation: Build must succeed before Plan", nil)
	}
	raw, err := FindPath(PlanRequest{
		Image:     c.img,
		Voronoi:   c.roadmap,
		StartA4:   startA4,
		StartA2:   startA2,
		TargetA4:  targetA4,
		TargetA2:  targetA2,
		Strategy:  strategy,
		Cfg:       c.cfg,
		WallIndex: c.wallIdx,
	})
	if err != nil {
		return nil, err
	}
	return DecodePath(c.img, space, raw, c.cfg)
}

// Image exposes the cached C-space raster, mainly for diagnostics and
// tests.
func (c *Calculation) Image() *ConfigSpaceImage { return c.img }

// Roadmap exposes the cached Voronoi roadmap, mainly for diagnostics and
// tests.
func (c *Calculation) Roadmap() *VoronoiResults { return c.roadmap }
