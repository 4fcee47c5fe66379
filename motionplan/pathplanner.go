package motionplan

import (
	"math"
	"strconv"

	algolv "github.com/katalvlaran/lvlath/graph/algorithms"
	corelv "github.com/katalvlaran/lvlath/graph/core"

	"github.com/ill-paths/tasengine/spatialmath"
)

// PathStrategy selects how roadmap edge weights are interpreted during the
// shortest-path search.
type PathStrategy int

const (
	// StrategyShortest searches the roadmap's plain arc-length weights.
	StrategyShortest PathStrategy = iota
	// StrategyPenaliseWalls divides each edge's weight by its endpoints'
	// minimum clearance from a wall, biasing the search away from
	// corridors that hug an obstacle even when they are geometrically
	// shorter.
	StrategyPenaliseWalls
)

// InstrumentPath is the raw pixel-space (angle-index) path a calculation
// produces before post-processing decodes it back into angles.
type InstrumentPath struct {
	Pixels []spatialmath.Vec2
}

// PlanRequest bundles everything FindPath needs beyond the roadmap itself.
type PlanRequest struct {
	Image              *ConfigSpaceImage
	Voronoi            *VoronoiResults
	StartA4, StartA2   float64
	TargetA4, TargetA2 float64
	Strategy           PathStrategy
	Cfg                Config
	// WallIndex is an optional spatial index of wall contour points, used
	// for the PenaliseWalls strategy and for the two-pass retraction
	// clearance check. A nil index disables both refinements.
	WallIndex *spatialmath.RTree
}

// FindPath searches for a collision-free pixel-space path between the
// request's start and target angles: first a direct shortcut if the two
// configurations are close and mutually visible, otherwise a
// retract-route-retract search over the Voronoi roadmap via Dijkstra.
func FindPath(req PlanRequest) (*InstrumentPath, error) {
	img := req.Image
	startCol, startRow := img.AngleToPixel(req.StartA4, req.StartA2)
	targetCol, targetRow := img.AngleToPixel(req.TargetA4, req.TargetA2)
	start := spatialmath.NewVec2(float64(startCol), float64(startRow))
	target := spatialmath.NewVec2(float64(targetCol), float64(targetRow))

	if img.At(startCol, startRow) != PixelFree {
		return nil, NewPlanError(ErrInvalidInput, "pathplanner: start configuration is not collision-free", nil)
	}
	if img.At(targetCol, targetRow) != PixelFree {
		return nil, NewPlanError(ErrInvalidInput, "pathplanner: target configuration is not collision-free", nil)
	}

	if req.Cfg.Directpath {
		radiusPx := pixelRadius(img, req.Cfg.DirectpathSearchRadius)
		if spatialmath.Dist(start, target) <= radiusPx && segmentFree(img, start, target) {
			return &InstrumentPath{Pixels: []spatialmath.Vec2{start, target}}, nil
		}
	}

	v := req.Voronoi
	if v == nil || len(v.Vertices) == 0 {
		return nil, NewPlanError(ErrUnreachable, "pathplanner: roadmap is empty", nil)
	}

	startIdx, err := retract(img, v, start, req.Cfg, req.WallIndex)
	if err != nil {
		return nil, err
	}
	targetIdx, err := retract(img, v, target, req.Cfg, req.WallIndex)
	if err != nil {
		return nil, err
	}

	startAttach := refineAttachment(img, v, start, startIdx, req.Cfg)
	targetAttach := refineAttachment(img, v, target, targetIdx, req.Cfg)

	if startIdx == targetIdx {
		pts := []spatialmath.Vec2{start, startAttach, target}
		return &InstrumentPath{Pixels: removeLoops(img, pts)}, nil
	}

	g := buildWeightedGraph(v, req.Strategy, req.WallIndex)
	distm, parent, derr := algolv.Dijkstra(g, vertexID(startIdx))
	if derr != nil {
		return nil, NewPlanError(ErrUnreachable, "pathplanner: dijkstra failed on the roadmap graph", derr)
	}
	if d, ok := distm[vertexID(targetIdx)]; !ok || d == math.MaxInt64 {
		return nil, NewPlanError(ErrUnreachable, "pathplanner: no roadmap path connects the retraction points", nil)
	}

	ids, ok := reconstructPath(parent, vertexID(startIdx), vertexID(targetIdx))
	if !ok {
		return nil, NewPlanError(ErrUnreachable, "pathplanner: failed to reconstruct the shortest path", nil)
	}

	pts := []spatialmath.Vec2{start, startAttach}
	for i := 0; i+1 < len(ids); i++ {
		a, aok := vertexIndexFromID(ids[i])
		b, bok := vertexIndexFromID(ids[i+1])
		if !aok || !bok {
			continue
		}
		poly := edgePolyline(v, a, b)
		if len(poly) == 0 {
			continue
		}
		if i == 0 {
			pts = append(pts, poly...)
		} else {
			pts = append(pts, poly[1:]...)
		}
	}
	pts = append(pts, targetAttach, target)

	return &InstrumentPath{Pixels: removeLoops(img, pts)}, nil
}

// pixelRadius approximates an angular radius, in radians, as a pixel-space
// Euclidean distance using the C-space's average per-axis step size.
func pixelRadius(img *ConfigSpaceImage, radians float64) float64 {
	scale := (img.Domain.DA2 + img.Domain.DA4) / 2
	if scale <= 0 {
		return radians
	}
	return radians / scale
}

// segmentFree marches along (a,b) at roughly one-pixel steps and reports
// whether every sampled pixel is free.
func segmentFree(img *ConfigSpaceImage, a, b spatialmath.Vec2) bool {
	n := int(spatialmath.Dist(a, b)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := spatialmath.Lerp(a, b, t)
		if img.At(int(math.Round(p.X)), int(math.Round(p.Y))) != PixelFree {
			return false
		}
	}
	return true
}

// segmentClearsWalls marches along (a,b) and reports whether every sampled
// point stays at least minDist from the nearest indexed wall point. A nil
// or empty index trivially clears.
func segmentClearsWalls(img *ConfigSpaceImage, a, b spatialmath.Vec2, wallIndex *spatialmath.RTree, minDist float64) bool {
	if wallIndex == nil || wallIndex.Len() == 0 {
		return true
	}
	n := int(spatialmath.Dist(a, b)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := spatialmath.Lerp(a, b, t)
		if nearestWallDist(wallIndex, p) < minDist {
			return false
		}
	}
	return true
}

// retract finds the nearest roadmap vertex reachable from p by a
// collision-free straight line, in two passes: the first also requires the
// line to keep MinAngularDistToWalls clearance from every wall, the second
// relaxes that requirement and accepts any collision-free line.
func retract(img *ConfigSpaceImage, v *VoronoiResults, p spatialmath.Vec2, cfg Config, wallIndex *spatialmath.RTree) (int, error) {
	cands := v.RTree.KNearest(p, cfg.NumClosestVoronoiVertices)
	if len(cands) == 0 {
		return 0, NewPlanError(ErrRetractionFailed, "pathplanner: roadmap has no vertices to retract onto", nil)
	}
	for _, c := range cands {
		if segmentFree(img, p, c.Point) && segmentClearsWalls(img, p, c.Point, wallIndex, cfg.MinAngularDistToWalls) {
			return c.Payload, nil
		}
	}
	for _, c := range cands {
		if segmentFree(img, p, c.Point) {
			return c.Payload, nil
		}
	}
	return 0, NewPlanError(ErrRetractionFailed, "pathplanner: no collision-free line reaches the roadmap", nil)
}

// refineAttachment looks for a better-than-the-bare-vertex point to
// retract onto, by projecting p onto every bisector arc incident to
// vertexIdx (its first-order neighbours) and keeping the closest in-range,
// collision-free candidate. Wall clearance (MinAngularDistToWalls) is not
// checked for the candidates.
func refineAttachment(img *ConfigSpaceImage, v *VoronoiResults, p spatialmath.Vec2, vertexIdx int, cfg Config) spatialmath.Vec2 {
	best := v.Vertices[vertexIdx]
	bestDist := spatialmath.Dist(p, best)

	consider := func(candidate spatialmath.Vec2) {
		d := spatialmath.Dist(p, candidate)
		if d < bestDist && segmentFree(img, p, candidate) {
			bestDist = d
			best = candidate
		}
	}

	for key, seg := range v.LinearEdges {
		if key.A != vertexIdx && key.B != vertexIdx {
			continue
		}
		closest, t := spatialmath.ClosestPointOnSegment(seg.A, seg.B, p)
		if t > 0 && t < 1 {
			consider(closest)
		}
	}
	for key, poly := range v.ParabolicEdges {
		if key.A != vertexIdx && key.B != vertexIdx {
			continue
		}
		for i := 0; i+1 < len(poly); i++ {
			closest, t := spatialmath.ClosestPointOnSegment(poly[i], poly[i+1], p)
			if t > 0 && t < 1 {
				consider(closest)
			}
		}
	}
	return best
}

// buildWeightedGraph returns v.Graph directly for StrategyShortest. For
// StrategyPenaliseWalls it rebuilds the graph with each edge's weight
// divided by the minimum wall clearance of its two endpoints, so the
// search favours corridors away from obstacles even at some length cost.
// A nil wallIndex falls back to StrategyShortest, since there is nothing
// to penalise against.
func buildWeightedGraph(v *VoronoiResults, strategy PathStrategy, wallIndex *spatialmath.RTree) *corelv.Graph {
	if strategy == StrategyShortest || wallIndex == nil || wallIndex.Len() == 0 {
		return v.Graph
	}
	clearance := func(idx int) float64 {
		d := nearestWallDist(wallIndex, v.Vertices[idx])
		if d < 1e-6 {
			d = 1e-6
		}
		return d
	}
	g := corelv.NewGraph(false, true)
	for i := range v.Vertices {
		g.AddVertex(&corelv.Vertex{ID: vertexID(i), Metadata: map[string]interface{}{}})
	}
	for k, seg := range v.LinearEdges {
		w := penalisedWeight(spatialmath.Dist(seg.A, seg.B), clearance(k.A), clearance(k.B))
		g.AddEdge(vertexID(k.A), vertexID(k.B), w)
	}
	for k, poly := range v.ParabolicEdges {
		w := penalisedWeight(polylineLength(poly), clearance(k.A), clearance(k.B))
		g.AddEdge(vertexID(k.A), vertexID(k.B), w)
	}
	return g
}

func penalisedWeight(length, clearA, clearB float64) int64 {
	denom := math.Min(clearA, clearB)
	return int64(length / denom * weightScale)
}

// reconstructPath walks a Dijkstra parent map backward from targetID to
// startID, returning the vertex IDs in forward order.
func reconstructPath(parent map[string]string, startID, targetID string) ([]string, bool) {
	var ids []string
	cur := targetID
	for {
		ids = append(ids, cur)
		if cur == startID {
			break
		}
		p, ok := parent[cur]
		if !ok || p == "" {
			return nil, false
		}
		cur = p
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, true
}

// edgePolyline returns the points of the bisector arc between two
// adjacent roadmap vertices, oriented from fromIdx to toIdx.
func edgePolyline(v *VoronoiResults, fromIdx, toIdx int) []spatialmath.Vec2 {
	key := makeEdgeKey(fromIdx, toIdx)
	if seg, ok := v.LinearEdges[key]; ok {
		if fromIdx == key.A {
			return []spatialmath.Vec2{seg.A, seg.B}
		}
		return []spatialmath.Vec2{seg.B, seg.A}
	}
	if poly, ok := v.ParabolicEdges[key]; ok {
		if fromIdx == key.A {
			out := make([]spatialmath.Vec2, len(poly))
			copy(out, poly)
			return out
		}
		out := make([]spatialmath.Vec2, len(poly))
		for i, p := range poly {
			out[len(poly)-1-i] = p
		}
		return out
	}
	return nil
}

func vertexIndexFromID(id string) (int, bool) {
	if len(id) < 2 || id[0] != 'v' {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// removeLoops greedily shortcuts a pixel-space polyline: from each point it
// jumps forward to the farthest later point still reachable by a
// collision-free straight line, dropping any intermediate loop the raw
// retract/roadmap/retract assembly introduced.
func removeLoops(img *ConfigSpaceImage, pts []spatialmath.Vec2) []spatialmath.Vec2 {
	if len(pts) < 3 {
		return pts
	}
	out := []spatialmath.Vec2{pts[0]}
	i := 0
	for i < len(pts)-1 {
		j := len(pts) - 1
		for j > i+1 && !segmentFree(img, pts[i], pts[j]) {
			j--
		}
		out = append(out, pts[j])
		i = j
	}
	return out
}
