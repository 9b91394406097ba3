// Package dsp provides digital signal processing utilities and algorithms.
package dsp

// Common audio constants used throughout the DSP package and the processor.
const (
	// Gain/Level constants
	MinDB     = -200.0 // Minimum dB value (effectively silence)
	UnityGain = 1.0    // Unity gain (0 dB)

	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0
	SampleRate192k = 192000.0

	// Buffer sizes
	MinBufferSize     = 32
	DefaultBufferSize = 512
	MaxBufferSize     = 8192

	// Ramp time applied to control-thread parameter changes (seconds)
	RampTime = 0.02

	// Magnitudes outside (FlushFloor, FlushCeiling) are treated as bad values
	FlushFloor   = 1e-15
	FlushCeiling = 1e15
)

// RampSamples returns the dezipper ramp length for a sample rate.
func RampSamples(sampleRate float64) uint32 {
	if sampleRate <= 0 {
		return 0
	}
	return uint32(RampTime * sampleRate)
}
