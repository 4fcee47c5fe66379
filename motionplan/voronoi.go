package motionplan

import (
	"math"
	"strconv"

	corelv "github.com/katalvlaran/lvlath/graph/core"

	"github.com/ill-paths/tasengine/spatialmath"
)

// weightScale converts the roadmap's float64 arc-length edge weights into
// the int64 weights lvlath's Graph stores.
const weightScale = 1e6

// foundVertex is a candidate Voronoi vertex discovered from one generating
// triple, before near-duplicate candidates from different triples are
// collapsed into a single roadmap vertex.
type foundVertex struct {
	p     spatialmath.Vec2
	sites [3]int
}

// EdgeKey identifies an unordered pair of Voronoi vertex indices. NoneIndex
// encodes an infinite (unbounded) endpoint: a ray rather than a segment.
type EdgeKey struct{ A, B int }

// NoneIndex is the sentinel vertex index for an unbounded bisector
// endpoint.
const NoneIndex = -1

func makeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// VoronoiResults is the roadmap built from a line-segment arrangement: its
// vertices, the linear and parabolic bisector arcs retained between them,
// the undirected weighted graph over vertex indices, and a spatial index
// for nearest-vertex queries.
type VoronoiResults struct {
	Vertices       []spatialmath.Vec2
	LinearEdges    map[EdgeKey]LineSegment
	ParabolicEdges map[EdgeKey][]spatialmath.Vec2
	Graph          *corelv.Graph
	RTree          *spatialmath.RTree
}

// VoronoiBackend computes a VoronoiResults from a line-segment arrangement.
// More than one interchangeable implementation may exist; only one is built
// into this engine (see DESIGN.md) and a selected but unbuilt backend
// surfaces as ErrBackendUnavailable rather than panicking.
type VoronoiBackend interface {
	Compute(segments []LineSegment, groups []LineGroup, domain spatialmath.Vec2, cfg Config,
		wallIndex *spatialmath.RTree, regionInside func(spatialmath.Vec2) bool) (*VoronoiResults, error)
}

// siteKind tags a Voronoi generator site.
type siteKind int

const (
	sitePoint siteKind = iota
	siteLine
)

type site struct {
	kind  siteKind
	p     spatialmath.Vec2 // point-site location
	a, b, c float64        // line-site implicit form a*x+b*y+c=0, a^2+b^2=1
	segA, segB spatialmath.Vec2
	group int
}

// conic stores the six coefficients of Ax^2+Bxy+Cy^2+Dx+Ey+F=0.
type conic struct{ A, B, C, D, E, F float64 }

func (q conic) eval(x, y float64) float64 {
	return q.A*x*x + q.B*x*y + q.C*y*y + q.D*x + q.E*y + q.F
}

func (q conic) grad(x, y float64) (float64, float64) {
	return 2*q.A*x + q.B*y + q.D, q.B*x + 2*q.C*y + q.E
}

// isLinear reports whether this conic degenerates to a line (both sites of
// its generating pair are points, or the symmetric line-line branch
// collapsed algebraically to a degree-1 curve along the probed arc).
func (q conic) isLinear(eps float64) bool {
	return math.Abs(q.A) < eps && math.Abs(q.B) < eps && math.Abs(q.C) < eps
}

// siteConic returns the pseudo-distance-squared conic q(P) for a site: for
// a point site, ordinary squared distance; for a line site, the squared
// signed distance to its supporting line (the line is finite but the
// bisector candidate search treats its support as infinite, consistent
// with the standard segment-Voronoi reduction to point+line sub-sites).
func siteConic(s site) conic {
	if s.kind == sitePoint {
		return conic{A: 1, C: 1, D: -2 * s.p.X, E: -2 * s.p.Y, F: s.p.X*s.p.X + s.p.Y*s.p.Y}
	}
	a, b, c := s.a, s.b, s.c
	return conic{
		A: a * a, B: 2 * a * b, C: b * b,
		D: 2 * a * c, E: 2 * b * c, F: c * c,
	}
}

func diffConic(qi, qj conic) conic {
	return conic{A: qi.A - qj.A, B: qi.B - qj.B, C: qi.C - qj.C, D: qi.D - qj.D, E: qi.E - qj.E, F: qi.F - qj.F}
}

func dist2ToSite(p spatialmath.Vec2, s site) float64 {
	if s.kind == sitePoint {
		return spatialmath.Dist2(p, s.p)
	}
	d := s.a*p.X + s.b*p.Y + s.c
	return d * d
}

// buildSites decomposes the line-segment arrangement into point and line
// sub-sites, the standard reduction used by segment-Voronoi implementations
// (a finite segment behaves like its supporting line near its middle and
// like its endpoint near its ends).
func buildSites(segments []LineSegment, groups []LineGroup) []site {
	var sites []site
	groupOf := func(segIdx int) int {
		for gi, g := range groups {
			if segIdx >= g.Start && segIdx < g.End {
				return gi
			}
		}
		return -1
	}
	seenPoints := map[spatialmath.Vec2]bool{}
	for i, seg := range segments {
		g := groupOf(i)
		dir := seg.B.Sub(seg.A)
		n := dir.Norm()
		if n < 1e-9 {
			continue
		}
		// outward normal, arbitrary consistent orientation; sign only
		// matters for which of the two line-line branches is "real", which
		// the validity filter resolves regardless of orientation.
		a, b := -dir.Y/n, dir.X/n
		c := -(a*seg.A.X + b*seg.A.Y)
		sites = append(sites, site{kind: siteLine, a: a, b: b, c: c, segA: seg.A, segB: seg.B, group: g})
		for _, endpoint := range [2]spatialmath.Vec2{seg.A, seg.B} {
			if !seenPoints[endpoint] {
				seenPoints[endpoint] = true
				sites = append(sites, site{kind: sitePoint, p: endpoint, group: g})
			}
		}
	}
	return sites
}

// DirectVoronoiBackend computes the segment-Voronoi diagram by brute-force
// triple enumeration: every generator triple's pairwise bisectors (each a
// conic, degenerate to a line for point-point and line-line pairs, a true
// parabola for point-line pairs) are intersected numerically, and each
// intersection is validated as a genuine Voronoi vertex by confirming no
// other site is strictly closer. This trades the O(n log n) of a full
// sweep/incremental construction for simplicity; it is adequate for the
// obstacle counts a TAS instrument scene produces. See DESIGN.md.
type DirectVoronoiBackend struct{}

// Compute implements VoronoiBackend.
func (DirectVoronoiBackend) Compute(segments []LineSegment, groups []LineGroup, domain spatialmath.Vec2, cfg Config,
	wallIndex *spatialmath.RTree, regionInside func(spatialmath.Vec2) bool) (*VoronoiResults, error) {

	sites := buildSites(segments, groups)
	n := len(sites)
	if n < 2 {
		return &VoronoiResults{LinearEdges: map[EdgeKey]LineSegment{}, ParabolicEdges: map[EdgeKey][]spatialmath.Vec2{}, Graph: corelv.NewGraph(false, true)}, nil
	}

	var found []foundVertex

	eps := cfg.Eps
	if eps <= 0 {
		eps = 1e-3
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			qij := diffConic(siteConic(sites[i]), siteConic(sites[j]))
			for k := j + 1; k < n; k++ {
				qjk := diffConic(siteConic(sites[j]), siteConic(sites[k]))
				for _, start := range candidateStarts(sites[i], sites[j], sites[k]) {
					p, ok := newtonIntersect(qij, qjk, start, eps)
					if !ok || !withinDomain(p, domain) {
						continue
					}
					if !validVoronoiVertex(p, sites, i, j, k, eps) {
						continue
					}
					if !dedupVertex(found, p, eps) {
						found = append(found, foundVertex{p: p, sites: [3]int{i, j, k}})
					}
				}
			}
		}
	}

	// Collapse near-duplicate vertices (multiple triples landing on the
	// same geometric point) into a single vertex index.
	var vertices []spatialmath.Vec2
	vertexSites := map[int]map[int]bool{} // vertex idx -> set of generating site indices
	indexOf := func(p spatialmath.Vec2) int {
		for idx, v := range vertices {
			if spatialmath.AlmostEqual(v, p, eps) {
				return idx
			}
		}
		vertices = append(vertices, p)
		vertexSites[len(vertices)-1] = map[int]bool{}
		return len(vertices) - 1
	}
	for _, f := range found {
		vi := indexOf(f.p)
		for _, s := range f.sites {
			vertexSites[vi][s] = true
		}
	}

	// Optionally drop vertices too close to a wall or inside a forbidden
	// region.
	keep := make([]bool, len(vertices))
	for i := range vertices {
		keep[i] = true
		if cfg.RemoveBisectorsBelowMinWallDist && wallIndex != nil && wallIndex.Len() > 0 {
			if d := nearestWallDist(wallIndex, vertices[i]); d < cfg.MinAngularDistToWalls {
				keep[i] = false
			}
		}
		if keep[i] && regionInside != nil && regionInside(vertices[i]) {
			keep[i] = false
		}
	}

	// Build edges: for every pair of sites (i,j) from different groups,
	// gather the kept vertices on that bisector and connect consecutive
	// ones along the arc.
	linear := map[EdgeKey]LineSegment{}
	parabolic := map[EdgeKey][]spatialmath.Vec2{}
	degree := make([]int, len(vertices))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if sites[i].group == sites[j].group || sites[i].group < 0 || sites[j].group < 0 {
				continue
			}
			var onBisector []int
			for vi := range vertices {
				if !keep[vi] {
					continue
				}
				if vertexSites[vi][i] && vertexSites[vi][j] {
					onBisector = append(onBisector, vi)
				}
			}
			if len(onBisector) < 2 {
				continue
			}
			qij := diffConic(siteConic(sites[i]), siteConic(sites[j]))
			sortAlongBisector(vertices, onBisector, qij)
			for e := 0; e+1 < len(onBisector); e++ {
				u, v := onBisector[e], onBisector[e+1]
				key := makeEdgeKey(u, v)
				if qij.isLinear(1e-6) {
					linear[key] = LineSegment{A: vertices[u], B: vertices[v]}
				} else {
					parabolic[key] = sampleConicArc(qij, vertices[u], vertices[v], cfg.VoroedgeEps)
				}
				degree[u]++
				degree[v]++
			}
		}
	}

	return finalizeVoronoi(vertices, keep, degree, linear, parabolic)
}

// candidateStarts seeds Newton's method with geometrically plausible
// initial guesses for the intersection of two of the triple's bisectors:
// each site's anchor point, and pairwise midpoints between anchors.
func candidateStarts(a, b, c site) []spatialmath.Vec2 {
	anchor := func(s site) spatialmath.Vec2 {
		if s.kind == sitePoint {
			return s.p
		}
		return spatialmath.Lerp(s.segA, s.segB, 0.5)
	}
	pa, pb, pc := anchor(a), anchor(b), anchor(c)
	return []spatialmath.Vec2{
		pa, pb, pc,
		spatialmath.Lerp(pa, pb, 0.5),
		spatialmath.Lerp(pb, pc, 0.5),
		spatialmath.Lerp(pa, pc, 0.5),
		spatialmath.Lerp(spatialmath.Lerp(pa, pb, 0.5), pc, 0.5),
	}
}

// newtonIntersect finds a common root of two conics via Newton-Raphson from
// the given starting point.
func newtonIntersect(q1, q2 conic, start spatialmath.Vec2, eps float64) (spatialmath.Vec2, bool) {
	x, y := start.X, start.Y
	for iter := 0; iter < 50; iter++ {
		f1, f2 := q1.eval(x, y), q2.eval(x, y)
		if math.Abs(f1) < eps*eps && math.Abs(f2) < eps*eps {
			return spatialmath.NewVec2(x, y), true
		}
		d1x, d1y := q1.grad(x, y)
		d2x, d2y := q2.grad(x, y)
		det := d1x*d2y - d1y*d2x
		if math.Abs(det) < 1e-12 {
			return spatialmath.Vec2{}, false
		}
		dx := (f1*d2y - f2*d1y) / det
		dy := (f2*d1x - f1*d2x) / det
		x -= dx
		y -= dy
		if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > 1e9 || math.Abs(y) > 1e9 {
			return spatialmath.Vec2{}, false
		}
	}
	f1, f2 := q1.eval(x, y), q2.eval(x, y)
	if math.Abs(f1) < 1e-4 && math.Abs(f2) < 1e-4 {
		return spatialmath.NewVec2(x, y), true
	}
	return spatialmath.Vec2{}, false
}

func withinDomain(p spatialmath.Vec2, domain spatialmath.Vec2) bool {
	return p.X >= -1 && p.Y >= -1 && p.X <= domain.X+1 && p.Y <= domain.Y+1
}

func validVoronoiVertex(p spatialmath.Vec2, sites []site, i, j, k int, eps float64) bool {
	di, dj, dk := dist2ToSite(p, sites[i]), dist2ToSite(p, sites[j]), dist2ToSite(p, sites[k])
	tol := eps * eps * 64
	if math.Abs(di-dj) > tol || math.Abs(dj-dk) > tol {
		return false
	}
	best := math.Min(di, math.Min(dj, dk))
	for l, s := range sites {
		if l == i || l == j || l == k {
			continue
		}
		if dist2ToSite(p, s) < best-tol {
			return false
		}
	}
	return true
}

func dedupVertex(found []foundVertex, p spatialmath.Vec2, eps float64) bool {
	for _, f := range found {
		if spatialmath.AlmostEqual(f.p, p, eps) {
			return true
		}
	}
	return false
}

// sortAlongBisector orders vertex indices relative to the first listed
// vertex: by signed distance from it (the sign taken from the sum of the x
// and y displacements) when the conic is linear, or by x displacement when
// it is a parabola.
func sortAlongBisector(vertices []spatialmath.Vec2, idxs []int, q conic) {
	if len(idxs) < 2 {
		return
	}
	origin := vertices[idxs[0]]
	key := func(idx int) float64 {
		d := vertices[idx].Sub(origin)
		if !q.isLinear(1e-6) {
			return d.X // walk by x for parabolic arcs
		}
		return d.Norm() * math.Copysign(1, d.X+d.Y+1e-9)
	}
	for a := 1; a < len(idxs); a++ {
		for b := a; b > 0 && key(idxs[b]) < key(idxs[b-1]); b-- {
			idxs[b], idxs[b-1] = idxs[b-1], idxs[b]
		}
	}
}

// sampleConicArc discretizes the conic curve between two of its points by
// marching in x and solving the conic for y at each step. The step count is
// the endpoint distance divided by maxErr, clamped to [4, 256]; where the
// conic has no real root at a step, the straight line between the two
// points is used instead.
func sampleConicArc(q conic, from, to spatialmath.Vec2, maxErr float64) []spatialmath.Vec2 {
	if maxErr <= 0 {
		maxErr = 1e-2
	}
	steps := int(spatialmath.Dist(from, to)/math.Max(maxErr, 1e-6)) + 1
	if steps > 256 {
		steps = 256
	}
	if steps < 4 {
		steps = 4
	}
	out := make([]spatialmath.Vec2, 0, steps+1)
	prevY := from.Y
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := from.X + (to.X-from.X)*t
		y, ok := solveConicForY(q, x, prevY)
		if !ok {
			y = from.Y + (to.Y-from.Y)*t
		}
		out = append(out, spatialmath.NewVec2(x, y))
		prevY = y
	}
	return out
}

// solveConicForY solves Ax^2+Bxy+Cy^2+Dx+Ey+F=0 for y at fixed x, returning
// the root closest to hint.
func solveConicForY(q conic, x, hint float64) (float64, bool) {
	a := q.C
	b := q.B*x + q.E
	c := q.A*x*x + q.D*x + q.F
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return hint, false
		}
		return -c / b, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return hint, false
	}
	sq := math.Sqrt(disc)
	y1 := (-b + sq) / (2 * a)
	y2 := (-b - sq) / (2 * a)
	if math.Abs(y1-hint) < math.Abs(y2-hint) {
		return y1, true
	}
	return y2, true
}

func nearestWallDist(wallIndex *spatialmath.RTree, p spatialmath.Vec2) float64 {
	kp, ok := wallIndex.Nearest(p)
	if !ok {
		return math.Inf(1)
	}
	return spatialmath.Dist(p, kp.Point)
}

// finalizeVoronoi drops unkept and zero-degree vertices (shifting indices
// down so edge keys stay consistent, per the data-model invariant), builds
// the lvlath graph and the roadmap's R*-tree.
func finalizeVoronoi(vertices []spatialmath.Vec2, keep []bool, degree []int,
	linear map[EdgeKey]LineSegment, parabolic map[EdgeKey][]spatialmath.Vec2) (*VoronoiResults, error) {

	survive := make([]bool, len(vertices))
	for i := range vertices {
		survive[i] = keep[i] && degree[i] > 0
	}
	newIndex := make([]int, len(vertices))
	var finalVerts []spatialmath.Vec2
	for i, ok := range survive {
		if ok {
			newIndex[i] = len(finalVerts)
			finalVerts = append(finalVerts, vertices[i])
		} else {
			newIndex[i] = -1
		}
	}

	remap := func(m map[EdgeKey]LineSegment) map[EdgeKey]LineSegment {
		out := make(map[EdgeKey]LineSegment, len(m))
		for k, v := range m {
			if survive[k.A] && survive[k.B] {
				out[makeEdgeKey(newIndex[k.A], newIndex[k.B])] = v
			}
		}
		return out
	}
	remapPara := func(m map[EdgeKey][]spatialmath.Vec2) map[EdgeKey][]spatialmath.Vec2 {
		out := make(map[EdgeKey][]spatialmath.Vec2, len(m))
		for k, v := range m {
			if survive[k.A] && survive[k.B] {
				out[makeEdgeKey(newIndex[k.A], newIndex[k.B])] = v
			}
		}
		return out
	}

	finalLinear := remap(linear)
	finalParabolic := remapPara(parabolic)

	g := corelv.NewGraph(false, true)
	for i := range finalVerts {
		g.AddVertex(&corelv.Vertex{ID: vertexID(i), Metadata: map[string]interface{}{}})
	}
	for k, seg := range finalLinear {
		w := int64(spatialmath.Dist(seg.A, seg.B) * weightScale)
		g.AddEdge(vertexID(k.A), vertexID(k.B), w)
	}
	for k, poly := range finalParabolic {
		w := int64(polylineLength(poly) * weightScale)
		g.AddEdge(vertexID(k.A), vertexID(k.B), w)
	}

	kdPoints := make([]spatialmath.KDPoint, len(finalVerts))
	for i, v := range finalVerts {
		kdPoints[i] = spatialmath.KDPoint{Point: v, Payload: i}
	}

	return &VoronoiResults{
		Vertices:       finalVerts,
		LinearEdges:    finalLinear,
		ParabolicEdges: finalParabolic,
		Graph:          g,
		RTree:          spatialmath.NewRTree(kdPoints),
	}, nil
}

func vertexID(i int) string {
	return "v" + strconv.Itoa(i)
}

func polylineLength(pts []spatialmath.Vec2) float64 {
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		total += spatialmath.Dist(pts[i], pts[i+1])
	}
	return total
}

// BoostVoronoiBackend names the alternate backend this interface anticipates,
// grounded on the original engine's second, Boost.Polygon-based
// construction. It is not built into this module (see DESIGN.md); selecting
// it fails fast with ErrBackendUnavailable rather than silently falling
// back.
type BoostVoronoiBackend struct{}

// Compute implements VoronoiBackend by always failing: the backend is not
// compiled in.
func (BoostVoronoiBackend) Compute([]LineSegment, []LineGroup, spatialmath.Vec2, Config,
	*spatialmath.RTree, func(spatialmath.Vec2) bool) (*VoronoiResults, error) {
	return nil, NewPlanError(ErrBackendUnavailable, "voronoi: boost backend not built into this binary", nil)
}
