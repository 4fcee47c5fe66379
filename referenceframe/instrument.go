package referenceframe

import (
	"github.com/pkg/errors"

	"github.com/ill-paths/tasengine/spatialmath"
)

// Axis indices within an Instrument's flat axis slice.
const (
	AxisMonochromator = 0
	AxisSample        = 1
	AxisAnalyser      = 2
)

// Instrument holds the three coupled rotation axes of a triple-axis
// spectrometer: monochromator, sample and analyser. Axes are owned in a
// flat slice and reference their predecessor by index (see Axis.PrevIndex)
// rather than by pointer, so the whole instrument can be deep-copied without
// untangling cyclic references.
type Instrument struct {
	axes   [3]*Axis
	events Subject
}

// NewInstrument builds an instrument from its three axes, in
// monochromator/sample/analyser order. The sample's predecessor is set to
// the monochromator and the analyser's predecessor to the sample if not
// already configured.
func NewInstrument(mono, sample, analyser *Axis) (*Instrument, error) {
	if mono == nil || sample == nil || analyser == nil {
		return nil, errors.New("referenceframe: instrument requires all three axes")
	}
	mono.PrevIndex = -1
	if sample.PrevIndex == 0 || sample.PrevIndex == -1 {
		sample.PrevIndex = AxisMonochromator
	}
	if analyser.PrevIndex == 0 || analyser.PrevIndex == -1 {
		analyser.PrevIndex = AxisSample
	}
	axes := [3]*Axis{mono, sample, analyser}
	for i := range axes {
		if err := validatePrev(axes[:], i); err != nil {
			return nil, err
		}
	}
	return &Instrument{axes: axes}, nil
}

// Axis returns the axis at the given index (AxisMonochromator/Sample/Analyser).
func (inst *Instrument) Axis(idx int) *Axis { return inst.axes[idx] }

// Axes returns all three axes in monochromator/sample/analyser order.
func (inst *Instrument) Axes() []*Axis { return inst.axes[:] }

// Events returns the instrument's update event bus.
func (inst *Instrument) Events() *Subject { return &inst.events }

// SetAngle sets one axis's angle for the given selector and publishes an
// UpdateEvent.
func (inst *Instrument) SetAngle(axisIdx int, sel AngleSelector, val float64) {
	inst.axes[axisIdx].SetAngle(sel, val)
	inst.events.Publish(UpdateEvent{AxisID: inst.axes[axisIdx].ID})
}

// CheckAngularLimits reports whether every axis's three angles lie within
// their configured limits.
func (inst *Instrument) CheckAngularLimits() bool {
	for _, a := range inst.axes {
		for _, sel := range []AngleSelector{AngleIn, AngleInternal, AngleOut} {
			if !a.WithinLimit(sel) {
				return false
			}
		}
	}
	return true
}

// forwardTrafo returns the pose of axis idx for the given selector, walking
// the predecessor chain from the start.
func (inst *Instrument) forwardTrafo(idx int, sel AngleSelector) spatialmath.Pose {
	a := inst.axes[idx]
	var prevTrafo spatialmath.Pose
	if a.PrevIndex >= 0 {
		prevTrafo = inst.forwardTrafo(a.PrevIndex, AngleOut)
	}
	return a.forwardTransform(prevTrafo, sel)
}

// Clone returns a deep copy of the instrument's axes (including their
// current angles) with a fresh, unsubscribed event bus. Geometry components
// (immutable once loaded from the instrument description) and each axis's
// Limits map are shared with the original, not copied.
func (inst *Instrument) Clone() *Instrument {
	var axes [3]*Axis
	for i, a := range inst.axes {
		cp := *a
		axes[i] = &cp
	}
	return &Instrument{axes: axes}
}

// WorldComponents returns every rigid component belonging to the
// instrument (monochromator, sample and analyser, each of their three
// component lists), transformed into world-space poses at the instrument's
// current angles.
func (inst *Instrument) WorldComponents() []*spatialmath.Geometry {
	var out []*spatialmath.Geometry
	for idx, a := range inst.axes {
		for _, sel := range []AngleSelector{AngleIn, AngleInternal, AngleOut} {
			trafo := inst.forwardTrafo(idx, sel)
			for _, comp := range a.ComponentsFor(sel) {
				out = append(out, comp.Transform(trafo))
			}
		}
	}
	return out
}
