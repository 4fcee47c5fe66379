package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Pose is a rigid transform: a translation plus a rotation about the
// z-axis. The instrument only ever rotates its axes about z, so a full
// quaternion/4x4 matrix is more machinery than this domain needs; the
// teacher's own spatialmath keeps poses as translation+orientation pairs,
// generalized here to the single scalar angle this engine requires.
type Pose struct {
	point r3.Vector
	theta float64 // radians, rotation about +z
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return Pose{}
}

// NewPoseFromPoint returns a pose translated to point with zero rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{point: point}
}

// NewPose returns a pose translated to point, rotated by theta about z.
func NewPose(point r3.Vector, theta float64) Pose {
	return Pose{point: point, theta: theta}
}

// Point returns the pose's translation component.
func (p Pose) Point() r3.Vector { return p.point }

// Orientation returns the pose's rotation about z, in radians.
func (p Pose) Orientation() float64 { return p.theta }

// Compose returns the pose equivalent to applying p first, then next:
// next's frame is expressed relative to p's frame.
func (p Pose) Compose(next Pose) Pose {
	rotated := rotateZ(next.point, p.theta)
	return Pose{
		point: p.point.Add(rotated),
		theta: p.theta + next.theta,
	}
}

// Transform applies the pose to a point given in its local frame, returning
// the point's position in the parent frame.
func (p Pose) Transform(local r3.Vector) r3.Vector {
	return p.point.Add(rotateZ(local, p.theta))
}

// Transform2D applies only the planar (x, y) part of the pose to a 2D point.
func (p Pose) Transform2D(local Vec2) Vec2 {
	out := p.Transform(to3(local))
	return from3(out)
}

func rotateZ(v r3.Vector, theta float64) r3.Vector {
	s, c := math.Sincos(theta)
	return r3.Vector{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}
