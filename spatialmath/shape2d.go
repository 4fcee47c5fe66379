package spatialmath

import "math"

// Shape2D is the planar footprint of a Geometry: either a Circle (from a
// Cylinder or Sphere) or a Polygon (from a Box's four corners).
type Shape2D interface {
	isShape2D()
	AABB() (min, max Vec2)
}

// Circle is a 2D disc, used for the footprint of cylinders and spheres.
type Circle struct {
	Center Vec2
	Radius float64
}

func (Circle) isShape2D() {}

// AABB returns the circle's axis-aligned bounding box.
func (c Circle) AABB() (Vec2, Vec2) {
	r := Vec2{X: c.Radius, Y: c.Radius}
	return c.Center.Sub(r), c.Center.Add(r)
}

// Polygon is an ordered, convex loop of vertices, used for the footprint of
// boxes and for wall contours after convex splitting.
type Polygon struct {
	Vertices []Vec2
}

func (Polygon) isShape2D() {}

// AABB returns the polygon's axis-aligned bounding box.
func (p Polygon) AABB() (Vec2, Vec2) {
	min, max := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		min = Vec2{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y)}
		max = Vec2{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y)}
	}
	return min, max
}

// Edges returns the polygon's ordered edges as point pairs.
func (p Polygon) Edges() [][2]Vec2 {
	n := len(p.Vertices)
	edges := make([][2]Vec2, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]Vec2{p.Vertices[i], p.Vertices[(i+1)%n]}
	}
	return edges
}

// aabbOverlap is the cheap rejection test that precedes every polygon test.
func aabbOverlap(aMin, aMax, bMin, bMax Vec2) bool {
	if aMax.X < bMin.X || bMax.X < aMin.X {
		return false
	}
	if aMax.Y < bMin.Y || bMax.Y < aMin.Y {
		return false
	}
	return true
}

// CirclesCollide reports whether two circles overlap.
func CirclesCollide(a, b Circle) bool {
	r := a.Radius + b.Radius
	return Dist2(a.Center, b.Center) < r*r
}

// CircleDist returns the (possibly negative) gap between two circles' rims.
func CircleDist(a, b Circle) float64 {
	return Dist(a.Center, b.Center) - a.Radius - b.Radius
}

// LineLineIntersect returns the intersection point of segments (p1,p2) and
// (p3,p4), if the segments actually cross.
func LineLineIntersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	denom := cross(r, s)
	if math.Abs(denom) < 1e-12 {
		return Vec2{}, false // parallel or collinear
	}
	qp := p3.Sub(p1)
	t := cross(qp, s) / denom
	u := cross(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return p1.Add(r.Mul(t)), true
}

// LineLineIntersectInfinite intersects the infinite lines through (p1,p2)
// and (p3,p4), without the segment-range check LineLineIntersect applies.
func LineLineIntersectInfinite(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	denom := cross(r, s)
	if math.Abs(denom) < 1e-12 {
		return Vec2{}, false
	}
	qp := p3.Sub(p1)
	t := cross(qp, s) / denom
	return p1.Add(r.Mul(t)), true
}

func cross(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// ClosestPointOnSegment returns the closest point on segment (a,b) to p, and
// the parameter t in [0,1] at which it occurs.
func ClosestPointOnSegment(a, b, p Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < 1e-15 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t)), t
}

// CirclePolylineCollides reports whether a circle intersects any segment of
// an (open) polyline.
func CirclePolylineCollides(c Circle, pts []Vec2) bool {
	for i := 0; i+1 < len(pts); i++ {
		closest, _ := ClosestPointOnSegment(pts[i], pts[i+1], c.Center)
		if Dist(closest, c.Center) <= c.Radius {
			return true
		}
	}
	return false
}

// CirclePolygonCollide tests a circle against a convex polygon: the circle
// vs polyline test for the boundary, plus full containment checks in both
// directions (circle center inside polygon, or polygon vertex inside circle).
func CirclePolygonCollide(c Circle, poly Polygon) bool {
	if CirclePolylineCollides(c, append(append([]Vec2{}, poly.Vertices...), poly.Vertices[0])) {
		return true
	}
	if PointInPolygon(c.Center, poly) {
		return true
	}
	for _, v := range poly.Vertices {
		if Dist2(v, c.Center) <= c.Radius*c.Radius {
			return true
		}
	}
	return false
}

// PointInPolygon is the standard ray-casting test.
func PointInPolygon(p Vec2, poly Polygon) bool {
	inside := false
	n := len(poly.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly.Vertices[i], poly.Vertices[j]
		if ((vi.Y > p.Y) != (vj.Y > p.Y)) &&
			(p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X) {
			inside = !inside
		}
	}
	return inside
}

// PolygonsCollide tests two convex polygons for overlap via an AABB reject
// followed by an edge/edge sweep over the union of edges, plus mutual
// containment checks (one polygon fully inside the other touches no edges).
func PolygonsCollide(a, b Polygon) bool {
	aMin, aMax := a.AABB()
	bMin, bMax := b.AABB()
	if !aabbOverlap(aMin, aMax, bMin, bMax) {
		return false
	}
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if _, ok := LineLineIntersect(ea[0], ea[1], eb[0], eb[1]); ok {
				return true
			}
		}
	}
	if len(a.Vertices) > 0 && PointInPolygon(a.Vertices[0], b) {
		return true
	}
	if len(b.Vertices) > 0 && PointInPolygon(b.Vertices[0], a) {
		return true
	}
	return false
}

// ShapesCollide dispatches on the two Shape2D variants. This is the one
// double-dispatch point in the hot path: geometry primitives stay dumb data,
// collision logic lives at this layer.
func ShapesCollide(a, b Shape2D) bool {
	switch av := a.(type) {
	case Circle:
		switch bv := b.(type) {
		case Circle:
			return CirclesCollide(av, bv)
		case Polygon:
			return CirclePolygonCollide(av, bv)
		}
	case Polygon:
		switch bv := b.(type) {
		case Circle:
			return CirclePolygonCollide(bv, av)
		case Polygon:
			return PolygonsCollide(av, bv)
		}
	}
	return false
}

// ShapeAABB returns a shape's axis-aligned bounding box regardless of variant.
func ShapeAABB(s Shape2D) (Vec2, Vec2) { return s.AABB() }
