// Package controller - Debounced event detection with a rolling buffer and a cooldown clock.
package controller

// State describes where a Debouncer stands after its most recent observation.
type State int

const (
	// StateIdle means no qualifying detection is held in the buffer.
	StateIdle State = iota
	// StateAccumulating means the buffer holds qualifying detections but no event fired.
	StateAccumulating
	// StateConfirmed means an event fired on the most recent observation.
	StateConfirmed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Debouncer turns per-frame presence results into confirmed events.
//
// An observation confirms an event when the buffer is full and unanimously positive and
// more than MinInterval seconds have passed since the last confirmed event. The last
// confirmation time starts at zero, so the first event also needs t > MinInterval.
//
// The buffer keeps sliding after a confirmation. An object that stays in the region
// longer than the cooldown is therefore confirmed again once the cooldown elapses.
//
// Not safe for concurrent use; observations must arrive in frame order.
type Debouncer struct {
	buffer      *DetectionBuffer
	minInterval float64
	last        float64
	state       State
}

// NewDebouncer creates a Debouncer with a buffer of the given capacity and a cooldown
// of minInterval seconds.
func NewDebouncer(capacity int, minInterval float64) *Debouncer {
	return &Debouncer{
		buffer:      NewDetectionBuffer(capacity),
		minInterval: minInterval,
	}
}

// Observe records the presence result for the frame at time t (seconds from stream
// start) and reports whether it confirms an event.
//
// Arguments:
//   - present: Whether a qualifying object was found in the region on this frame.
//   - t: The frame time in seconds.
//
// Returns:
//   - bool: true when the observation confirms a new event.
func (d *Debouncer) Observe(present bool, t float64) bool {
	d.buffer.Push(present)

	if d.buffer.Unanimous() && t-d.last > d.minInterval {
		d.last = t
		d.state = StateConfirmed
		return true
	}

	if d.buffer.Any() {
		d.state = StateAccumulating
	} else {
		d.state = StateIdle
	}
	return false
}

// State returns the state reached by the most recent observation.
func (d *Debouncer) State() State { return d.state }

// LastConfirmed returns the time of the last confirmed event, or zero if none fired.
func (d *Debouncer) LastConfirmed() float64 { return d.last }

