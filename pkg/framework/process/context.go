// Package process provides the block context a host uses to drive a kernel:
// planar buffers plus the parameter ramp events scheduled for the block.
package process

import (
	"github.com/justyntemme/intensifier/pkg/dsp"
)

// Context provides a clean API for block processing with zero allocations
// after construction.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Backing storage sized for the largest block
	inputStorage  [][]float32
	outputStorage [][]float32
	maxBlockSize  int

	// Events for the current block, offsets relative to its first frame
	events []RampEvent
}

// NewContext creates a context with pre-allocated planar buffers.
func NewContext(channels, maxBlockSize int, sampleRate float64) *Context {
	c := &Context{
		SampleRate:    sampleRate,
		inputStorage:  make([][]float32, channels),
		outputStorage: make([][]float32, channels),
		maxBlockSize:  maxBlockSize,
		events:        make([]RampEvent, 0, 64),
	}
	for ch := 0; ch < channels; ch++ {
		c.inputStorage[ch] = make([]float32, maxBlockSize)
		c.outputStorage[ch] = make([]float32, maxBlockSize)
	}
	c.Input = make([][]float32, channels)
	c.Output = make([][]float32, channels)
	c.Resize(maxBlockSize)
	return c
}

// Resize sets the active block length - no allocation!
// frames is capped at the maximum block size.
func (c *Context) Resize(frames int) int {
	if frames > c.maxBlockSize {
		frames = c.maxBlockSize
	}
	if frames < 0 {
		frames = 0
	}
	for ch := range c.inputStorage {
		c.Input[ch] = c.inputStorage[ch][:frames]
		c.Output[ch] = c.outputStorage[ch][:frames]
	}
	return frames
}

// MaxBlockSize returns the capacity of each channel buffer.
func (c *Context) MaxBlockSize() int {
	return c.maxBlockSize
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumChannels returns the number of channels
func (c *Context) NumChannels() int {
	return len(c.Input)
}

// PassThrough copies input to output (for bypass). Channels whose input and
// output share memory are left alone.
func (c *Context) PassThrough() {
	numChannels := len(c.Input)
	if len(c.Output) < numChannels {
		numChannels = len(c.Output)
	}

	for ch := 0; ch < numChannels; ch++ {
		if dsp.SameBuffer(c.Input[ch], c.Output[ch]) {
			continue
		}
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		dsp.Clear(c.Output[ch])
	}
}

// AddEvent schedules a ramp event for this block. Events are kept ordered
// by offset; events with equal offsets keep their insertion order.
func (c *Context) AddEvent(e RampEvent) {
	c.events = insertEvent(c.events, e)
}

// Events returns the events scheduled for this block.
func (c *Context) Events() []RampEvent {
	return c.events
}

// HasEvents reports whether any event is scheduled.
func (c *Context) HasEvents() bool {
	return len(c.events) > 0
}

// ClearEvents drops all scheduled events, keeping capacity.
func (c *Context) ClearEvents() {
	c.events = c.events[:0]
}
