package dsp

import "math"

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// SameBuffer reports whether two slices start at the same memory.
func SameBuffer(a, b []float32) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FlushBad returns x unless it is non-finite, denormal-small or absurdly
// large, in which case it returns 0.
func FlushBad(x float32) float32 {
	abs := math.Abs(float64(x))
	if abs > FlushFloor && abs < FlushCeiling {
		return x
	}
	return 0
}

// Peak finds the maximum absolute value in a buffer
func Peak(buffer []float32) float32 {
	peak := float32(0)
	for _, sample := range buffer {
		abs := float32(math.Abs(float64(sample)))
		if abs > peak {
			peak = abs
		}
	}
	return peak
}

// Deinterleave splits interleaved frames into planar channel buffers.
// Each dst channel must hold at least len(src)/len(dst) samples.
func Deinterleave(dst [][]float32, src []float32) {
	channels := len(dst)
	if channels == 0 {
		return
	}
	frames := len(src) / channels
	for ch := 0; ch < channels; ch++ {
		out := dst[ch][:frames]
		for i := range out {
			out[i] = src[i*channels+ch]
		}
	}
}

// Interleave merges planar channel buffers into interleaved frames.
// dst must hold frames*len(src) samples.
func Interleave(dst []float32, src [][]float32, frames int) {
	channels := len(src)
	for ch := 0; ch < channels; ch++ {
		in := src[ch][:frames]
		for i, x := range in {
			dst[i*channels+ch] = x
		}
	}
}
