package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GeometryType tags the variant held by a Geometry.
type GeometryType int

// The three primitive kinds the instrument description can load.
const (
	GeometryBox GeometryType = iota
	GeometryCylinder
	GeometrySphere
)

func (t GeometryType) String() string {
	switch t {
	case GeometryBox:
		return "box"
	case GeometryCylinder:
		return "cylinder"
	case GeometrySphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Geometry is a rigid 3D primitive that can be projected into the
// instrument's horizontal (x/y) plane for 2D collision checking. Box,
// Cylinder and Sphere are the only variants needed; rather than a class
// hierarchy the variant is tagged and dispatch happens once, at the
// contour/collision layer, avoiding dynamic dispatch in hot paths.
type Geometry struct {
	kind  GeometryType
	pose  Pose
	label string

	// box
	length, depth, height float64

	// cylinder / sphere
	radius float64
}

// autoLabel fills in a unique identifier for geometries loaded from
// instrument descriptions that don't name every primitive explicitly: the
// exclusion map and collision reports key off Label, so an empty label would
// make an unlabelled wall indistinguishable from any other.
func autoLabel(label string) string {
	if label != "" {
		return label
	}
	return "geom-" + uuid.NewString()
}

// NewBox returns a box primitive of the given (length, depth, height) at pose.
func NewBox(pose Pose, length, depth, height float64, label string) (*Geometry, error) {
	if length <= 0 || depth <= 0 || height <= 0 {
		return nil, errors.New("spatialmath: box dimensions must be positive")
	}
	return &Geometry{kind: GeometryBox, pose: pose, length: length, depth: depth, height: height, label: autoLabel(label)}, nil
}

// NewCylinder returns a cylinder primitive of the given radius and height at pose.
func NewCylinder(pose Pose, radius, height float64, label string) (*Geometry, error) {
	if radius <= 0 || height <= 0 {
		return nil, errors.New("spatialmath: cylinder dimensions must be positive")
	}
	return &Geometry{kind: GeometryCylinder, pose: pose, radius: radius, height: height, label: autoLabel(label)}, nil
}

// NewSphere returns a sphere primitive of the given radius at pose.
func NewSphere(pose Pose, radius float64, label string) (*Geometry, error) {
	if radius <= 0 {
		return nil, errors.New("spatialmath: sphere radius must be positive")
	}
	return &Geometry{kind: GeometrySphere, pose: pose, radius: radius, label: autoLabel(label)}, nil
}

// GetTrafo returns the geometry's pose, i.e. its homogeneous transform.
func (g *Geometry) GetTrafo() Pose { return g.pose }

// Label returns the geometry's user-visible identifier.
func (g *Geometry) Label() string { return g.label }

// SetLabel overrides the geometry's identifier.
func (g *Geometry) SetLabel(l string) { g.label = l }

// Type returns which primitive variant this geometry holds.
func (g *Geometry) Type() GeometryType { return g.kind }

// Transform returns a copy of g with its pose composed under parent.
func (g *Geometry) Transform(parent Pose) *Geometry {
	out := *g
	out.pose = parent.Compose(g.pose)
	return &out
}

// Project2D reduces the 3D primitive to its 2D footprint for collision
// checking in the instrument plane: Cylinder and Sphere become circles
// (their axis position, transformed by the owning axis's trafo); Box
// becomes a 4-vertex convex polygon.
func (g *Geometry) Project2D() Shape2D {
	center := from3(g.pose.Point())
	switch g.kind {
	case GeometryCylinder, GeometrySphere:
		return Circle{Center: center, Radius: g.radius}
	case GeometryBox:
		return boxFootprint(g, center)
	default:
		return nil
	}
}

func boxFootprint(g *Geometry, center Vec2) Polygon {
	hl, hd := g.length/2, g.depth/2
	theta := g.pose.Orientation()
	corners := [4]Vec2{
		{X: -hl, Y: -hd}, {X: hl, Y: -hd}, {X: hl, Y: hd}, {X: -hl, Y: hd},
	}
	pts := make([]Vec2, 4)
	for i, c := range corners {
		rx, ry := rotate2(c.X, c.Y, theta)
		pts[i] = Vec2{X: center.X + rx, Y: center.Y + ry}
	}
	return Polygon{Vertices: pts}
}

func rotate2(x, y, theta float64) (float64, float64) {
	rv := rotateZ(r3.Vector{X: x, Y: y}, theta)
	return rv.X, rv.Y
}
