// Package delay provides a fixed-capacity delay line for signal alignment.
package delay

import "math"

// Line implements a circular-buffer delay with optional feedback.
//
// Capacity is fixed by Init. SetDelayMs clamps requests to that capacity, so
// Push never has to check bounds beyond the wraparound.
type Line struct {
	buffer     []float32
	bufferSize int
	writePos   int
	sampleRate float64

	delaySamples int
	feedback     float32
	output       float32
}

// New creates a delay line able to hold maxDelayMs of audio.
func New(sampleRate, maxDelayMs float64) *Line {
	d := &Line{}
	d.Init(sampleRate, maxDelayMs)
	return d
}

// Init sizes the buffer for maxDelayMs and clears it. The current delay is
// re-clamped to the new capacity. It allocates.
func (d *Line) Init(sampleRate, maxDelayMs float64) {
	if maxDelayMs < 0 {
		maxDelayMs = 0
	}
	d.sampleRate = sampleRate
	d.bufferSize = msToSamples(maxDelayMs, sampleRate) + 1
	d.buffer = make([]float32, d.bufferSize)
	if d.delaySamples > d.MaxDelaySamples() {
		d.delaySamples = d.MaxDelaySamples()
	}
	d.Clear()
}

// Clear zeroes the buffer and the last output.
func (d *Line) Clear() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
	d.output = 0
}

// MaxDelaySamples returns the longest delay the buffer can hold.
func (d *Line) MaxDelaySamples() int {
	return d.bufferSize - 1
}

// SetDelayMs sets the delay time and returns the applied delay in samples.
// Requests outside [0, capacity] are clamped.
func (d *Line) SetDelayMs(ms float64) int {
	return d.SetDelaySamples(msToSamples(ms, d.sampleRate))
}

// SetDelaySamples sets the delay in samples, clamped to capacity.
func (d *Line) SetDelaySamples(samples int) int {
	if samples < 0 {
		samples = 0
	}
	if limit := d.MaxDelaySamples(); samples > limit {
		samples = limit
	}
	d.delaySamples = samples
	return samples
}

// DelaySamples returns the active delay in samples.
func (d *Line) DelaySamples() int {
	return d.delaySamples
}

// SetFeedback sets the amount of the previous output fed back into the line.
func (d *Line) SetFeedback(feedback float32) {
	d.feedback = feedback
}

// Push writes a sample. Afterwards Output returns the sample pushed exactly
// DelaySamples pushes earlier, plus any feedback it carried.
func (d *Line) Push(sample float32) {
	if d.bufferSize == 0 {
		d.output = sample
		return
	}
	if d.delaySamples == 0 {
		d.buffer[d.writePos] = sample
		d.output = sample
	} else {
		readPos := d.writePos - d.delaySamples
		if readPos < 0 {
			readPos += d.bufferSize
		}
		d.output = d.buffer[readPos]
		d.buffer[d.writePos] = sample + d.feedback*d.output
	}

	d.writePos++
	if d.writePos >= d.bufferSize {
		d.writePos = 0
	}
}

// Output returns the delayed sample produced by the last Push.
func (d *Line) Output() float32 {
	return d.output
}

// Process pushes a sample and returns the delayed output.
func (d *Line) Process(input float32) float32 {
	d.Push(input)
	return d.output
}

func msToSamples(ms, sampleRate float64) int {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(math.Round(ms * sampleRate / 1000.0))
}
