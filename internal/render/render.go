// Package render drives the Intensifier kernel over whole clips and raw
// sample streams, block by block, the way a host would.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/intensifier/internal/audio"
	"github.com/justyntemme/intensifier/pkg/dsp"
	"github.com/justyntemme/intensifier/pkg/dsp/dynamics"
	"github.com/justyntemme/intensifier/pkg/framework/debug"
	"github.com/justyntemme/intensifier/pkg/framework/process"
	"github.com/justyntemme/intensifier/pkg/intensifier"
)

// DefaultBlockSize is the block length used when Options.BlockSize is 0.
const DefaultBlockSize = dsp.DefaultBufferSize

// Progress is reported after every block.
type Progress struct {
	Frames      int // frames rendered so far
	Total       int // total frames, 0 for streams
	Diagnostics dynamics.Diagnostics
	OutputPeak  float32 // peak of the last block
}

// Options controls a render.
type Options struct {
	BlockSize int
	Bypass    bool

	// Compensate removes the kernel latency from clip renders: the
	// output is shifted back by the latency and the tail is flushed.
	Compensate bool

	// Schedule holds automation at absolute frame offsets.
	Schedule *process.Schedule
	Profiler *debug.RenderProfiler
	Logger   *debug.Logger
	Progress func(Progress)
}

func (o *Options) blockSize() int {
	if o.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return o.BlockSize
}

func (o *Options) logger() *debug.Logger {
	if o.Logger == nil {
		return debug.Default()
	}
	return o.Logger
}

// Summary describes a finished render.
type Summary struct {
	SampleRate int
	Channels   int
	Frames     int
	Latency    int
	Input      debug.AnalysisResult
	Output     debug.AnalysisResult
	Events     int

	RealtimeFactor float64
	CPULoad        float64
}

// runner holds the per-render state shared by clip and stream renders.
type runner struct {
	k       *intensifier.Kernel
	opts    *Options
	ctx     *process.Context
	inMeter *debug.AudioAnalyzer
	out     *debug.AudioAnalyzer
	events  int
}

func newRunner(k *intensifier.Kernel, channels int, sampleRate float64, opts *Options) *runner {
	k.Init(channels, sampleRate)
	k.SetBypass(opts.Bypass)
	if opts.Schedule != nil {
		opts.Schedule.Rewind()
	}
	return &runner{
		k:       k,
		opts:    opts,
		ctx:     process.NewContext(channels, opts.blockSize(), sampleRate),
		inMeter: debug.NewAudioAnalyzer(),
		out:     debug.NewAudioAnalyzer(),
	}
}

// block renders the frames already loaded into the context. start is the
// absolute frame of the first one.
func (r *runner) block(start, frames int) {
	c := r.ctx
	c.ClearEvents()
	if r.opts.Schedule != nil {
		for _, e := range r.opts.Schedule.Window(start, frames) {
			c.AddEvent(e)
		}
	}
	r.events += len(c.Events())

	r.k.SetBuffers(c.Input, c.Output)
	done := func() {}
	if r.opts.Profiler != nil {
		done = r.opts.Profiler.Block(frames)
	}
	r.k.ProcessEvents(frames, 0, c.Events())
	done()
}

func (r *runner) report(frames, total int) {
	if r.opts.Progress == nil {
		return
	}
	var peak float32
	for _, ch := range r.ctx.Output {
		if p := dsp.Peak(ch); p > peak {
			peak = p
		}
	}
	r.opts.Progress(Progress{
		Frames:      frames,
		Total:       total,
		Diagnostics: r.k.ChannelState(0),
		OutputPeak:  peak,
	})
}

func (r *runner) summary(frames int) Summary {
	s := Summary{
		SampleRate: int(r.k.SampleRate()),
		Channels:   r.k.ChannelCount(),
		Frames:     frames,
		Latency:    r.k.LatencySamples(),
		Input:      r.inMeter.Result(),
		Output:     r.out.Result(),
		Events:     r.events,
	}
	if p := r.opts.Profiler; p != nil {
		s.RealtimeFactor = p.RealtimeFactor()
		s.CPULoad = p.CPULoad()
	}
	log := r.opts.logger()
	debug.LogIssues(log, r.inMeter, "input")
	debug.LogIssues(log, r.out, "output")
	return s
}

// Clip renders a whole clip and returns the processed copy. A cancelled ctx
// stops the render between blocks and returns ctx.Err().
func Clip(ctx context.Context, k *intensifier.Kernel, in *audio.Clip, opts Options) (*audio.Clip, Summary, error) {
	channels := in.NumChannels()
	if channels == 0 || in.SampleRate <= 0 {
		return nil, Summary{}, fmt.Errorf("render: clip has %d channels @ %d Hz", channels, in.SampleRate)
	}

	r := newRunner(k, channels, float64(in.SampleRate), &opts)
	frames := in.Frames()
	out := audio.NewClip(in.SampleRate, channels, frames)

	shift := 0
	if opts.Compensate && !opts.Bypass {
		shift = k.LatencySamples()
	}
	total := frames + shift
	r.inMeter.AddChannels(in.Channels)

	for pos := 0; pos < total; {
		if err := ctx.Err(); err != nil {
			return nil, r.summary(min(pos, frames)), err
		}
		n := r.ctx.Resize(total - pos)
		for ch := 0; ch < channels; ch++ {
			dst := r.ctx.Input[ch]
			copied := 0
			if pos < frames {
				copied = copy(dst, in.Channels[ch][pos:])
			}
			dsp.Clear(dst[copied:])
		}

		r.block(pos, n)

		// Output frame i of this block lands at pos+i-shift.
		for ch := 0; ch < channels; ch++ {
			src := r.ctx.Output[ch]
			from := 0
			if pos < shift {
				from = shift - pos
			}
			if from < n {
				copy(out.Channels[ch][pos+from-shift:], src[from:n])
			}
		}

		pos += n
		r.report(min(pos, frames), frames)
	}

	r.out.AddChannels(out.Channels)
	r.opts.logger().Debug("rendered %d frames in %d-frame blocks (%d events)", frames, opts.blockSize(), r.events)
	return out, r.summary(frames), nil
}

// Stream renders interleaved float32 frames from src to dst until src is
// exhausted or ctx is cancelled.
func Stream(ctx context.Context, k *intensifier.Kernel, src io.Reader, dst io.Writer, channels int, sampleRate float64, opts Options) (Summary, error) {
	if channels <= 0 || sampleRate <= 0 {
		return Summary{}, fmt.Errorf("render: invalid stream layout %d channels @ %g Hz", channels, sampleRate)
	}

	r := newRunner(k, channels, sampleRate, &opts)
	reader := audio.NewRawReader(src, channels)
	writer := audio.NewRawWriter(dst)
	buf := make([]float32, opts.blockSize()*channels)

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return r.summary(frames), nil
		}

		n, err := reader.Read(buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return r.summary(frames), err
		}

		got := r.ctx.LoadInterleaved(buf[:n])
		r.inMeter.AddChannels(r.ctx.Input)
		r.block(frames, got)
		r.out.AddChannels(r.ctx.Output)

		written := r.ctx.StoreInterleaved(buf)
		if err := writer.Write(buf[:written]); err != nil {
			return r.summary(frames), err
		}
		frames += got
		r.report(frames, 0)
	}
	return r.summary(frames), nil
}
