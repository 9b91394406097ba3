package param

import (
	"math"
	"sync/atomic"
)

// Ramper dezippers a parameter for the audio thread.
//
// The control thread publishes a new target with SetTarget. The audio thread
// polls once per block with CheckForUpdate and, if the target changed, starts a
// linear ramp from the current value to the new target. Only the most recent
// target written between two polls is observed.
//
// The value is evaluated as a line equation (slope * remaining + goal) rather
// than by integrating a step, so long ramps land on the goal exactly.
type Ramper struct {
	// Written by the control thread, read by the audio thread.
	target        atomic.Uint32 // float32 bits
	changeCounter atomic.Int32

	// Audio thread only.
	updateCounter int32
	goal          float32
	slope         float32
	remaining     uint32
}

// NewRamper creates a ramper resting at value.
func NewRamper(value float32) *Ramper {
	r := &Ramper{}
	r.setImmediate(value)
	return r
}

func (r *Ramper) setImmediate(value float32) {
	r.target.Store(math.Float32bits(value))
	r.goal = value
	r.slope = 0
	r.remaining = 0
}

// Init re-anchors the ramper on its pending target with no active ramp.
// Call it from the kernel's init, when the audio thread is not running.
func (r *Ramper) Init() {
	r.setImmediate(r.Target())
}

// Reset clears the change counters.
func (r *Ramper) Reset() {
	r.changeCounter.Store(0)
	r.updateCounter = 0
}

// SetTarget publishes a new target from the control thread.
// The caller is responsible for clamping.
func (r *Ramper) SetTarget(value float32) {
	r.target.Store(math.Float32bits(value))
	r.changeCounter.Add(1)
}

// Target returns the pending target. This is the only value that is safe to
// read from outside the audio thread.
func (r *Ramper) Target() float32 {
	return math.Float32frombits(r.target.Load())
}

// CheckForUpdate starts a ramp of duration samples toward the pending target
// if the control thread changed it since the last call. It reports whether a
// new ramp was started.
func (r *Ramper) CheckForUpdate(duration uint32) bool {
	snapshot := r.changeCounter.Load()
	if snapshot == r.updateCounter {
		return false
	}
	r.updateCounter = snapshot
	r.StartRamp(r.Target(), duration)
	return true
}

// StartRamp starts a ramp toward goal directly from the audio thread.
// A zero duration jumps to goal.
func (r *Ramper) StartRamp(goal float32, duration uint32) {
	if duration == 0 {
		r.setImmediate(goal)
		return
	}
	// slope must be computed from the current value before goal moves.
	r.slope = (r.Value() - goal) / float32(duration)
	r.remaining = duration
	r.goal = goal
	r.target.Store(math.Float32bits(goal))
}

// Value returns the current ramped value without advancing.
func (r *Ramper) Value() float32 {
	return r.slope*float32(r.remaining) + r.goal
}

// Goal returns the value the active ramp ends on.
func (r *Ramper) Goal() float32 {
	return r.goal
}

// Remaining returns the number of samples left in the active ramp.
func (r *Ramper) Remaining() uint32 {
	return r.remaining
}

// IsRamping reports whether a ramp is in progress.
func (r *Ramper) IsRamping() bool {
	return r.remaining != 0
}

// Advance moves the ramp forward by one sample.
func (r *Ramper) Advance() {
	if r.remaining != 0 {
		r.remaining--
	}
}

// ValueAndAdvance returns the current value and then advances one sample.
func (r *Ramper) ValueAndAdvance() float32 {
	if r.remaining == 0 {
		return r.goal
	}
	v := r.Value()
	r.remaining--
	return v
}

// AdvanceBy moves the ramp forward by n samples, for parameters that did not
// take part in the inner loop.
func (r *Ramper) AdvanceBy(n uint32) {
	if n >= r.remaining {
		r.remaining = 0
		return
	}
	r.remaining -= n
}
