// Package controller - This file contains the fixed-capacity detection buffer used to debounce
// per-frame presence results.
package controller

// DetectionBuffer is a fixed-capacity FIFO of per-frame presence results.
//
// Pushing beyond capacity evicts the oldest entry. The backing array never grows.
type DetectionBuffer struct {
	values []bool
	head   int // index of the oldest entry
	size   int
}

// NewDetectionBuffer creates an empty buffer holding at most capacity results.
// A capacity below one is raised to one.
func NewDetectionBuffer(capacity int) *DetectionBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &DetectionBuffer{values: make([]bool, capacity)}
}

// Push appends v, evicting the oldest entry when the buffer is full.
func (b *DetectionBuffer) Push(v bool) {
	if b.size < len(b.values) {
		b.values[(b.head+b.size)%len(b.values)] = v
		b.size++
		return
	}
	b.values[b.head] = v
	b.head = (b.head + 1) % len(b.values)
}

// Len returns the number of results currently held.
func (b *DetectionBuffer) Len() int { return b.size }

// Cap returns the fixed capacity.
func (b *DetectionBuffer) Cap() int { return len(b.values) }

// Full reports whether the buffer holds Cap() results.
func (b *DetectionBuffer) Full() bool { return b.size == len(b.values) }

// Unanimous reports whether the buffer is full and every held result is true.
func (b *DetectionBuffer) Unanimous() bool {
	if !b.Full() {
		return false
	}
	for _, v := range b.values {
		if !v {
			return false
		}
	}
	return true
}

// Any reports whether at least one held result is true.
func (b *DetectionBuffer) Any() bool {
	for i := 0; i < b.size; i++ {
		if b.values[(b.head+i)%len(b.values)] {
			return true
		}
	}
	return false
}

// Values returns a copy of the held results, oldest first.
func (b *DetectionBuffer) Values() []bool {
	out := make([]bool, b.size)
	for i := range out {
		out[i] = b.values[(b.head+i)%len(b.values)]
	}
	return out
}

// Reset discards every held result.
func (b *DetectionBuffer) Reset() {
	b.head = 0
	b.size = 0
}
