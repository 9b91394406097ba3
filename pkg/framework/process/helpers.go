package process

import "github.com/justyntemme/intensifier/pkg/dsp"

// LoadInterleaved resizes the block to hold src and splits it into the input
// channels. It returns the number of frames loaded; a trailing partial frame
// is ignored.
func (ctx *Context) LoadInterleaved(src []float32) int {
	channels := len(ctx.inputStorage)
	if channels == 0 {
		return 0
	}
	frames := ctx.Resize(len(src) / channels)
	dsp.Deinterleave(ctx.Input, src[:frames*channels])
	return frames
}

// StoreInterleaved writes the output channels into dst as interleaved frames
// and returns the number of samples written.
func (ctx *Context) StoreInterleaved(dst []float32) int {
	frames := ctx.NumSamples()
	n := frames * len(ctx.Output)
	dsp.Interleave(dst[:n], ctx.Output, frames)
	return n
}
