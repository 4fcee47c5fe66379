package spatialmath

import "math"

// SimplifyContour drops interior vertices of a closed pixel loop whose bend
// angle is below angularEps, provided the vertex is also within
// simplifyMinDist of the line between its neighbours. This removes the
// staircase artefacts a rasterized contour otherwise accumulates.
func SimplifyContour(loop []Vec2, angularEps, simplifyMinDist float64) []Vec2 {
	n := len(loop)
	if n < 4 {
		return loop
	}
	out := make([]Vec2, 0, n)
	for i := 0; i < n; i++ {
		prev := loop[(i-1+n)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		if keepVertex(prev, cur, next, angularEps, simplifyMinDist) {
			out = append(out, cur)
		}
	}
	if len(out) < 3 {
		return loop
	}
	return out
}

func keepVertex(prev, cur, next Vec2, angularEps, minDist float64) bool {
	v1 := prev.Sub(cur)
	v2 := next.Sub(cur)
	n1, n2 := v1.Norm(), v2.Norm()
	if n1 < 1e-9 || n2 < 1e-9 {
		return false
	}
	cosAngle := v1.Dot(v2) / (n1 * n2)
	cosAngle = math.Max(-1, math.Min(1, cosAngle))
	bend := math.Pi - math.Acos(cosAngle)
	if bend < angularEps {
		// near-straight: only drop it if it's also close to the chord
		closest, _ := ClosestPointOnSegment(prev, next, cur)
		if Dist(closest, cur) < minDist {
			return false
		}
	}
	return true
}

// ConvexSplit recursively splits a possibly-concave simple polygon into
// convex parts. At each step it finds the largest concave corner, extends
// one of its edges into the polygon, and cuts at the nearest interior
// intersection. If no such intersection can be found the original polygon
// is returned unsplit, per spec: "if the search fails the original contour
// is kept intact".
func ConvexSplit(poly Polygon) []Polygon {
	if isConvex(poly.Vertices) {
		return []Polygon{poly}
	}

	idx, ok := largestConcaveCorner(poly.Vertices)
	if !ok {
		return []Polygon{poly}
	}

	n := len(poly.Vertices)
	prev := poly.Vertices[(idx-1+n)%n]
	cur := poly.Vertices[idx]
	next := poly.Vertices[(idx+1)%n]
	_ = next

	// extend the edge (prev, cur) past cur into the polygon interior and
	// find the nearest intersection with a non-adjacent edge.
	far := cur.Add(cur.Sub(prev).Mul(1e6))
	cutIdx, cutPoint, ok := nearestInteriorCut(poly.Vertices, idx, cur, far)
	if !ok {
		return []Polygon{poly}
	}

	a, b := splitAt(poly.Vertices, idx, cutIdx, cutPoint)
	left := ConvexSplit(Polygon{Vertices: a})
	right := ConvexSplit(Polygon{Vertices: b})
	return append(left, right...)
}

func isConvex(pts []Vec2) bool {
	n := len(pts)
	if n < 4 {
		return true
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		c := pts[(i+2)%n]
		z := cross(b.Sub(a), c.Sub(b))
		if math.Abs(z) < 1e-12 {
			continue
		}
		s := 1
		if z < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// largestConcaveCorner returns the index of the most concave vertex: among
// the reflex corners (interior angle above pi), the one whose
// orientation-adjusted cross product of its adjacent edges is most
// negative. It returns false when the polygon has no reflex corner.
func largestConcaveCorner(pts []Vec2) (int, bool) {
	n := len(pts)
	orientation := polygonOrientation(pts)
	worstIdx := -1
	worstTurn := 0.0
	for i := 0; i < n; i++ {
		a := pts[(i-1+n)%n]
		b := pts[i]
		c := pts[(i+1)%n]
		turn := cross(b.Sub(a), c.Sub(b)) * orientation
		if turn < -worstTurn || (worstIdx == -1 && turn < 0) {
			if turn < worstTurn || worstIdx == -1 {
				worstTurn = turn
				worstIdx = i
			}
		}
	}
	if worstIdx == -1 || worstTurn >= 0 {
		return 0, false
	}
	return worstIdx, true
}

func polygonOrientation(pts []Vec2) float64 {
	area := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	if area < 0 {
		return -1
	}
	return 1
}

func nearestInteriorCut(pts []Vec2, fromIdx int, from, far Vec2) (int, Vec2, bool) {
	n := len(pts)
	bestIdx := -1
	bestDist := math.Inf(1)
	var bestPoint Vec2
	for i := 0; i < n; i++ {
		// skip edges touching the source vertex
		if i == fromIdx || (i+1)%n == fromIdx {
			continue
		}
		p, ok := LineLineIntersect(from, far, pts[i], pts[(i+1)%n])
		if !ok {
			continue
		}
		d := Dist2(from, p)
		if d < bestDist && d > 1e-12 {
			bestDist = d
			bestIdx = i
			bestPoint = p
		}
	}
	if bestIdx == -1 {
		return 0, Vec2{}, false
	}
	return bestIdx, bestPoint, true
}

// splitAt divides the polygon loop into two new loops along the cut from
// vertex fromIdx to a new point inserted into edge (cutIdx, cutIdx+1).
func splitAt(pts []Vec2, fromIdx, cutIdx int, cutPoint Vec2) ([]Vec2, []Vec2) {
	n := len(pts)

	var a []Vec2
	for i := fromIdx; ; i = (i + 1) % n {
		a = append(a, pts[i])
		if i == cutIdx {
			a = append(a, cutPoint)
			break
		}
	}

	var b []Vec2
	for i := (cutIdx + 1) % n; ; i = (i + 1) % n {
		b = append(b, pts[i])
		if i == fromIdx {
			break
		}
	}
	b = append([]Vec2{cutPoint}, b...)

	return a, b
}
