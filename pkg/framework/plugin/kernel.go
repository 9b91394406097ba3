// Package plugin defines the contract between a host and a DSP kernel.
package plugin

// Kernel is the render-side surface a host drives.
//
// SetParameter and GetParameter may be called from a control thread at any
// time. Everything else belongs to the render thread and must not run
// concurrently with Process.
type Kernel interface {
	// Init allocates per-channel state. Not real-time safe.
	Init(channels int, sampleRate float64)
	// Deinit releases buffers and state.
	Deinit()
	// Reset clears detection state between renders.
	Reset()

	IsBypassed() bool
	SetBypass(bypassed bool)

	// SetParameter clamps value and publishes it as the ramp target.
	SetParameter(address uint32, value float32)
	// GetParameter returns the target, never the instantaneous value.
	GetParameter(address uint32) float32
	// StartRamp ramps a parameter over duration frames from the render thread.
	StartRamp(address uint32, value float32, duration uint32)

	// SetBuffers binds planar input and output buffers, one per channel.
	SetBuffers(in, out [][]float32)
	// Process renders frames starting at offset in the bound buffers.
	Process(frames, offset int)

	// LatencySamples reports the delay the kernel adds to the signal.
	LatencySamples() int
}
