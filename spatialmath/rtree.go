package spatialmath

import (
	"container/heap"
	"math"
	"sort"
)

// RTree is a static R*-tree-style spatial index over 2D points, used to
// accelerate nearest-vertex queries on the Voronoi roadmap and on wall
// positions. It is built once (bulk-loaded with a sort-tile-recursive
// layout, the standard low-variance substitute for the full R* insertion
// algorithm when the full point set is known up front) and queried many
// times; the roadmap never mutates it after construction.
//
// No third-party spatial-index package appears anywhere in the retrieval
// corpus (see DESIGN.md), so this is a from-scratch implementation grounded
// on the algorithm sketch in the original engine's src/libs/trees.h.
type RTree struct {
	root *rNode
	n    int
}

type rNode struct {
	min, max Vec2
	// leaf data
	point   Vec2
	payload int
	leaf    bool
	// internal data
	children []*rNode
}

const rtreeLeafCap = 8

// NewRTree bulk-loads an R-tree over the given points.
func NewRTree(points []KDPoint) *RTree {
	if len(points) == 0 {
		return &RTree{}
	}
	leaves := make([]*rNode, len(points))
	for i, p := range points {
		leaves[i] = &rNode{min: p.Point, max: p.Point, point: p.Point, payload: p.Payload, leaf: true}
	}
	root := strBuild(leaves)
	return &RTree{root: root, n: len(points)}
}

// strBuild implements sort-tile-recursive bulk loading: repeatedly groups
// nodes into slabs along x, then y, until a single root remains.
func strBuild(nodes []*rNode) *rNode {
	for len(nodes) > 1 {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].min.X < nodes[j].min.X })
		groupSize := rtreeLeafCap
		var next []*rNode
		for i := 0; i < len(nodes); i += groupSize * groupSize {
			end := i + groupSize*groupSize
			if end > len(nodes) {
				end = len(nodes)
			}
			slab := nodes[i:end]
			sort.Slice(slab, func(a, b int) bool { return slab[a].min.Y < slab[b].min.Y })
			for j := 0; j < len(slab); j += groupSize {
				jend := j + groupSize
				if jend > len(slab) {
					jend = len(slab)
				}
				next = append(next, packGroup(slab[j:jend]))
			}
		}
		nodes = next
	}
	return nodes[0]
}

func packGroup(children []*rNode) *rNode {
	if len(children) == 1 {
		return children[0]
	}
	min, max := children[0].min, children[0].max
	for _, c := range children[1:] {
		min = Vec2{X: math.Min(min.X, c.min.X), Y: math.Min(min.Y, c.min.Y)}
		max = Vec2{X: math.Max(max.X, c.max.X), Y: math.Max(max.Y, c.max.Y)}
	}
	return &rNode{min: min, max: max, children: children}
}

// Len returns the number of indexed points.
func (t *RTree) Len() int { return t.n }

func mbrDist2(min, max, q Vec2) float64 {
	dx := math.Max(min.X-q.X, math.Max(0, q.X-max.X))
	dy := math.Max(min.Y-q.Y, math.Max(0, q.Y-max.Y))
	return dx*dx + dy*dy
}

type rtreeQueueItem struct {
	node *rNode
	dist float64
}

type rtreeQueue []rtreeQueueItem

func (q rtreeQueue) Len() int            { return len(q) }
func (q rtreeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q rtreeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *rtreeQueue) Push(x interface{}) { *q = append(*q, x.(rtreeQueueItem)) }
func (q *rtreeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// KNearest returns up to k indexed points closest to q, sorted ascending by
// distance, using a best-first branch-and-bound search over the tree.
func (t *RTree) KNearest(q Vec2, k int) []KDPoint {
	if t.root == nil || k <= 0 {
		return nil
	}
	pq := &rtreeQueue{{node: t.root, dist: mbrDist2(t.root.min, t.root.max, q)}}
	heap.Init(pq)

	var out []KDPoint
	for pq.Len() > 0 && len(out) < k {
		item := heap.Pop(pq).(rtreeQueueItem)
		n := item.node
		if n.leaf {
			out = append(out, KDPoint{Point: n.point, Payload: n.payload})
			continue
		}
		for _, c := range n.children {
			heap.Push(pq, rtreeQueueItem{node: c, dist: mbrDist2(c.min, c.max, q)})
		}
	}
	return out
}

// Nearest returns the single closest indexed point to q.
func (t *RTree) Nearest(q Vec2) (KDPoint, bool) {
	res := t.KNearest(q, 1)
	if len(res) == 0 {
		return KDPoint{}, false
	}
	return res[0], true
}
