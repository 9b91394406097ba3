// Package envelope provides level followers and smoothers for dynamics detection.
package envelope

import "math"

// MaxRMSWindow is the largest supported window in samples (20 s at 44.1 kHz).
const MaxRMSWindow = 882000

// MovingRMS is a windowed root-mean-square follower.
//
// The running sum of squares is updated incrementally. A second accumulator
// collects the squares of one full pass over the buffer and replaces the
// running sum at every wraparound, so add/subtract error cannot build up
// over long runs.
type MovingRMS struct {
	sampleRate float64
	buffer     []float32
	window     int
	index      int
	seen       int

	accum float64
	calib float64

	output float32
}

// NewMovingRMS creates a follower with the given window in samples.
func NewMovingRMS(sampleRate float64, window int) *MovingRMS {
	m := &MovingRMS{}
	m.Init(sampleRate, window)
	return m
}

// Init sizes the window and clears all state. Windows above MaxRMSWindow are
// capped. It allocates and must not be called from the render thread.
func (m *MovingRMS) Init(sampleRate float64, window int) {
	if window > MaxRMSWindow {
		window = MaxRMSWindow
	}
	if window < 0 {
		window = 0
	}
	m.sampleRate = sampleRate
	m.window = window
	if cap(m.buffer) >= window {
		m.buffer = m.buffer[:window]
	} else {
		m.buffer = make([]float32, window)
	}
	m.Clear()
}

// WindowForDuration converts a window length in seconds to samples.
func WindowForDuration(sampleRate, seconds float64) int {
	return int(sampleRate * seconds)
}

// Clear zeroes the history without resizing.
func (m *MovingRMS) Clear() {
	for i := range m.buffer {
		m.buffer[i] = 0
	}
	m.index = 0
	m.seen = 0
	m.accum = 0
	m.calib = 0
	m.output = 0
}

// Window returns the window length in samples.
func (m *MovingRMS) Window() int {
	return m.window
}

// Push feeds one sample and returns the new RMS value. A non-finite sample
// enters the history as silence so it cannot poison the accumulators.
func (m *MovingRMS) Push(x float32) float32 {
	var result float64

	if m.window > 1 {
		if !isFinite32(x) {
			x = 0
		}
		sq := float64(x) * float64(x)
		m.accum += sq
		m.calib += sq

		if m.seen < m.window {
			m.seen++
		} else {
			old := float64(m.buffer[m.index])
			m.accum -= old * old
		}
		m.buffer[m.index] = x

		if m.accum < 0 {
			m.accum = 0
		}
		result = math.Sqrt(m.accum / float64(m.window))

		m.index++
		if m.index >= m.window {
			m.index = 0
			m.accum = m.calib
			m.calib = 0
		}
	} else {
		result = math.Abs(float64(x))
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		result = math.Abs(float64(x))
	}
	m.output = float32(result)
	return m.output
}

// Output returns the value computed by the last Push.
func (m *MovingRMS) Output() float32 {
	return m.output
}

func isFinite32(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
