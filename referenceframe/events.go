// Package referenceframe holds the instrument model: axes, their rigid
// components, and the InstrumentSpace that ties them together with the
// surrounding walls. It exposes forward kinematics and the 2D collision and
// angular-limits predicates the rest of the engine drives.
package referenceframe

// UpdateEvent is published whenever an axis angle changes.
type UpdateEvent struct {
	AxisID string
}

// Subject is a minimal synchronous event bus. The original engine used
// boost::signals2 for this; Go has no standard equivalent; a subject of
// subscriber funcs is the idiomatic stand-in and keeps the axis/instrument
// graph free of any hidden global state.
type Subject struct {
	subscribers []func(UpdateEvent)
}

// Subscribe registers a handler invoked for every future event.
func (s *Subject) Subscribe(fn func(UpdateEvent)) {
	s.subscribers = append(s.subscribers, fn)
}

// Publish synchronously notifies every subscriber.
func (s *Subject) Publish(evt UpdateEvent) {
	for _, fn := range s.subscribers {
		fn(evt)
	}
}
