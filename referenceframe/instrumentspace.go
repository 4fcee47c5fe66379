package referenceframe

import "github.com/ill-paths/tasengine/spatialmath"

// geometryPairKey identifies an unordered pair of geometries by label, for
// the optional exclusion table below.
type geometryPairKey struct{ a, b string }

func makePairKey(a, b string) geometryPairKey {
	if a > b {
		a, b = b, a
	}
	return geometryPairKey{a, b}
}

// InstrumentSpace is the floor plan: its fixed dimensions, the wall
// geometries bounding it, and the Instrument moving within it. It exposes
// the collision and angular-limits predicates the path planner drives at
// every sampled angle.
type InstrumentSpace struct {
	LenX, LenY float64
	Walls      []*spatialmath.Geometry
	Instrument *Instrument

	// Excluded disables the collision check for specific geometry-label
	// pairs, e.g. a detector known to always sit flush against its mount.
	// Never populated automatically; callers opt components in via Exclude.
	Excluded map[geometryPairKey]bool
}

// NewInstrumentSpace builds an InstrumentSpace over the given floor
// dimensions, walls and instrument.
func NewInstrumentSpace(lenX, lenY float64, walls []*spatialmath.Geometry, inst *Instrument) *InstrumentSpace {
	return &InstrumentSpace{LenX: lenX, LenY: lenY, Walls: walls, Instrument: inst}
}

// Exclude marks a pair of geometry labels as exempt from collision
// checking.
func (is *InstrumentSpace) Exclude(labelA, labelB string) {
	if is.Excluded == nil {
		is.Excluded = map[geometryPairKey]bool{}
	}
	is.Excluded[makePairKey(labelA, labelB)] = true
}

func (is *InstrumentSpace) excludedPair(a, b *spatialmath.Geometry) bool {
	if len(is.Excluded) == 0 {
		return false
	}
	return is.Excluded[makePairKey(a.Label(), b.Label())]
}

// CheckAngularLimits reports whether every instrument axis is within its
// configured angular limits.
func (is *InstrumentSpace) CheckAngularLimits() bool {
	return is.Instrument.CheckAngularLimits()
}

// CheckCollision2D reports whether any pair of instrument components
// collide with each other or with a wall, at the instrument's current
// angles. Each candidate pair is rejected cheaply via AABB before the exact
// circle/polygon test runs; pairs named in Excluded are skipped entirely.
func (is *InstrumentSpace) CheckCollision2D() bool {
	moving := is.Instrument.WorldComponents()

	for i, a := range moving {
		shapeA := a.Project2D()
		aMin, aMax := spatialmath.ShapeAABB(shapeA)

		for _, w := range is.Walls {
			if is.excludedPair(a, w) {
				continue
			}
			shapeW := w.Project2D()
			wMin, wMax := spatialmath.ShapeAABB(shapeW)
			if !aabbOverlaps(aMin, aMax, wMin, wMax) {
				continue
			}
			if spatialmath.ShapesCollide(shapeA, shapeW) {
				return true
			}
		}

		for j := i + 1; j < len(moving); j++ {
			b := moving[j]
			if is.excludedPair(a, b) {
				continue
			}
			shapeB := b.Project2D()
			bMin, bMax := spatialmath.ShapeAABB(shapeB)
			if !aabbOverlaps(aMin, aMax, bMin, bMax) {
				continue
			}
			if spatialmath.ShapesCollide(shapeA, shapeB) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the space, suitable for handing to a single
// C-space worker goroutine: walls and geometry are immutable once loaded
// and are shared, but the Instrument (and its axes' mutable angles) is
// fully duplicated so each worker can drive its own angles without a mutex.
func (is *InstrumentSpace) Clone() *InstrumentSpace {
	clone := &InstrumentSpace{
		LenX:       is.LenX,
		LenY:       is.LenY,
		Walls:      is.Walls, // read-only once loaded
		Instrument: is.Instrument.Clone(),
	}
	if len(is.Excluded) > 0 {
		clone.Excluded = make(map[geometryPairKey]bool, len(is.Excluded))
		for k, v := range is.Excluded {
			clone.Excluded[k] = v
		}
	}
	return clone
}

func aabbOverlaps(aMin, aMax, bMin, bMax spatialmath.Vec2) bool {
	if aMax.X < bMin.X || bMax.X < aMin.X {
		return false
	}
	if aMax.Y < bMin.Y || bMax.Y < aMin.Y {
		return false
	}
	return true
}
