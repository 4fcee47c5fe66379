package referenceframe

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ill-paths/tasengine/spatialmath"
)

// AngleSelector picks which of an axis's three angles a forward transform
// or a component list refers to.
type AngleSelector int

// The three frames an axis carries: the incoming frame (shared with its
// predecessor's outgoing frame), the internal (crystal) frame, and the
// outgoing (scattering) frame.
const (
	AngleIn AngleSelector = iota
	AngleInternal
	AngleOut
)

// Limit is an inclusive [Lower, Upper] angular range, in radians.
type Limit struct {
	Lower, Upper float64
}

// Contains reports whether angle lies within the limit.
func (l Limit) Contains(angle float64) bool {
	return angle >= l.Lower && angle <= l.Upper
}

// Axis is one of the instrument's three coupled rotation stages
// (monochromator, sample, analyser). It is a value addressed by index
// within its owning Instrument's flat axis slice rather than holding a
// pointer to its predecessor, so the chain can never become cyclic.
type Axis struct {
	ID string

	AIn, AInternal, AOut float64 // radians
	Limits               map[AngleSelector]Limit

	Speed float64 // angular speed, used for motor-speed path weighting
	Pos   spatialmath.Vec2

	// DetectorOffset is a configurable offset for a component riding on
	// this axis's outgoing side, kept as a field rather than a hardcoded
	// constant. It defaults to zero; the config loader does not read it and
	// no code in this module applies it.
	DetectorOffset spatialmath.Vec2

	// PrevIndex is the index of this axis's predecessor in the owning
	// Instrument's axis slice, or -1 if this is the first axis.
	PrevIndex int

	// Components fixed to the incoming frame, rotating with the internal
	// frame, and fixed to the outgoing frame, respectively.
	CompsIn, CompsInternal, CompsOut []*spatialmath.Geometry
}

// NewAxis returns an axis with no angular limits and no predecessor.
func NewAxis(id string) *Axis {
	return &Axis{ID: id, PrevIndex: -1, Limits: map[AngleSelector]Limit{}}
}

// Angle returns the axis's angle for the given selector.
func (a *Axis) Angle(sel AngleSelector) float64 {
	switch sel {
	case AngleIn:
		return a.AIn
	case AngleInternal:
		return a.AInternal
	default:
		return a.AOut
	}
}

// SetAngle sets the axis's angle for the given selector.
func (a *Axis) SetAngle(sel AngleSelector, val float64) {
	switch sel {
	case AngleIn:
		a.AIn = val
	case AngleInternal:
		a.AInternal = val
	default:
		a.AOut = val
	}
}

// WithinLimit reports whether the axis's current angle for sel lies within
// its configured limit; axes with no configured limit for a selector are
// unconstrained.
func (a *Axis) WithinLimit(sel AngleSelector) bool {
	lim, ok := a.Limits[sel]
	if !ok {
		return true
	}
	return lim.Contains(a.Angle(sel))
}

// ComponentsFor returns the rigid components attached to the given frame.
func (a *Axis) ComponentsFor(sel AngleSelector) []*spatialmath.Geometry {
	switch sel {
	case AngleIn:
		return a.CompsIn
	case AngleInternal:
		return a.CompsInternal
	default:
		return a.CompsOut
	}
}

// forwardTransform composes predecessor * translate(Pos) * rotateZ(angle).
// prevTrafo is the predecessor's pose, or the identity for the first axis in
// the chain.
func (a *Axis) forwardTransform(prevTrafo spatialmath.Pose, sel AngleSelector) spatialmath.Pose {
	local := spatialmath.NewPose(r3.Vector{X: a.Pos.X, Y: a.Pos.Y}, a.Angle(sel))
	return prevTrafo.Compose(local)
}

// validatePrev checks that PrevIndex references an earlier axis, enforcing
// the acyclic invariant at construction time rather than at traversal time.
func validatePrev(axes []*Axis, idx int) error {
	prev := axes[idx].PrevIndex
	if prev == -1 {
		return nil
	}
	if prev < 0 || prev >= idx {
		return errors.Errorf("referenceframe: axis %q has invalid predecessor index %d", axes[idx].ID, prev)
	}
	return nil
}
