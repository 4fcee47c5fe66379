// Package spatialmath provides the 2D geometry kernel used by the path
// planning engine: vectors and poses, the Box/Cylinder/Sphere geometry
// primitives, pairwise collision tests, contour simplification and convex
// splitting, and the k-d tree / R*-tree spatial indices used to accelerate
// nearest-neighbour queries over wall contours and Voronoi vertices.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Vec2 is an alias for the library's 2D point type. Angles, pixel
// coordinates and planar positions are all expressed in this type.
type Vec2 = r2.Point

// NewVec2 builds a Vec2 from its components.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// AlmostEqual reports whether two vectors are equal within eps.
func AlmostEqual(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Dist returns the Euclidean distance between two vectors.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Norm()
}

// Dist2 returns the squared Euclidean distance, avoiding a sqrt.
func Dist2(a, b Vec2) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// WeightedDist returns the distance between two vectors after independently
// rescaling each axis, used for motor-speed-weighted path lengths.
func WeightedDist(a, b Vec2, xScale, yScale float64) float64 {
	dx, dy := (a.X-b.X)*xScale, (a.Y-b.Y)*yScale
	return math.Hypot(dx, dy)
}

// Lerp linearly interpolates between a and b at parameter t in [0,1].
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// to3 lifts a planar vector into the XY plane at z=0, for composing with
// the 3D poses that geometry primitives carry.
func to3(v Vec2) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: 0}
}

func from3(v r3.Vector) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
