package spatialmath

import "sort"

// KDTree is a static 2D k-d tree for nearest-point queries (the engine's
// wall and roadmap indices use RTree instead), grounded on the original engine's
// ClosestPixelTree (src/libs/trees.h): a simple balanced binary partition
// is sufficient here since the tree is built once per C-space and never
// mutated.
type KDTree struct {
	root *kdNode
}

type kdNode struct {
	point       Vec2
	payload     int // index into the caller's original slice
	left, right *kdNode
	axis        int
}

// KDPoint pairs a point with an opaque payload (typically an index into the
// caller's slice of source points).
type KDPoint struct {
	Point   Vec2
	Payload int
}

// NewKDTree builds a balanced k-d tree over the given points.
func NewKDTree(points []KDPoint) *KDTree {
	pts := make([]KDPoint, len(points))
	copy(pts, points)
	return &KDTree{root: buildKD(pts, 0)}
}

func buildKD(pts []KDPoint, depth int) *kdNode {
	if len(pts) == 0 {
		return nil
	}
	axis := depth % 2
	sort.Slice(pts, func(i, j int) bool {
		if axis == 0 {
			return pts[i].Point.X < pts[j].Point.X
		}
		return pts[i].Point.Y < pts[j].Point.Y
	})
	mid := len(pts) / 2
	node := &kdNode{point: pts[mid].Point, payload: pts[mid].Payload, axis: axis}
	node.left = buildKD(pts[:mid], depth+1)
	node.right = buildKD(pts[mid+1:], depth+1)
	return node
}

// Nearest returns the closest point to q and its payload, plus false if the
// tree is empty.
func (t *KDTree) Nearest(q Vec2) (KDPoint, bool) {
	if t.root == nil {
		return KDPoint{}, false
	}
	best := t.root
	bestDist := Dist2(q, t.root.point)
	t.nearest(t.root, q, &best, &bestDist)
	return KDPoint{Point: best.point, Payload: best.payload}, true
}

func (t *KDTree) nearest(n *kdNode, q Vec2, best **kdNode, bestDist *float64) {
	if n == nil {
		return
	}
	d := Dist2(q, n.point)
	if d < *bestDist {
		*bestDist = d
		*best = n
	}

	var diff, near, far float64
	var nearNode, farNode *kdNode
	if n.axis == 0 {
		diff = q.X - n.point.X
	} else {
		diff = q.Y - n.point.Y
	}
	if diff <= 0 {
		nearNode, farNode = n.left, n.right
	} else {
		nearNode, farNode = n.right, n.left
	}
	near, far = diff, diff

	t.nearest(nearNode, q, best, bestDist)
	if far*far < *bestDist {
		t.nearest(farNode, q, best, bestDist)
	}
	_ = near
}

// DistToNearest returns the distance from q to the closest indexed point.
func (t *KDTree) DistToNearest(q Vec2) float64 {
	p, ok := t.Nearest(q)
	if !ok {
		return 0
	}
	return Dist(q, p.Point)
}
