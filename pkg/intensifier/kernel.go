// Package intensifier implements the Intensifier block processor: the
// kernel a host drives to run the transient-shaping dynamics engine.
package intensifier

import (
	"github.com/justyntemme/intensifier/pkg/dsp"
	"github.com/justyntemme/intensifier/pkg/dsp/dynamics"
	"github.com/justyntemme/intensifier/pkg/framework/debug"
	"github.com/justyntemme/intensifier/pkg/framework/param"
	"github.com/justyntemme/intensifier/pkg/framework/plugin"
	"github.com/justyntemme/intensifier/pkg/framework/process"
)

// PluginInfo describes the processor.
var PluginInfo = plugin.Info{
	ID:           "com.justyntemme.intensifier",
	Name:         "Intensifier",
	Version:      "1.0.0",
	Vendor:       "Justyn Temme",
	Category:     "Fx|Dynamics",
	Subtype:      "ints",
	Manufacturer: "JTmm",
}

var _ plugin.Kernel = (*Kernel)(nil)

// Kernel is the Intensifier block processor.
//
// The six parameter rampers are shared by all channels; detection state is
// per channel inside the engine. Only SetParameter and GetParameter are safe
// to call from outside the render thread.
type Kernel struct {
	rampers [ParamCount]*param.Ramper
	engine  dynamics.Intensifier

	sampleRate   float64
	rampDuration uint32
	bypassed     bool
	initialized  bool

	in  [][]float32
	out [][]float32

	logger *debug.Logger
}

// New creates a kernel with every parameter at its default.
func New() *Kernel {
	k := &Kernel{logger: debug.Default()}
	for i, s := range specs {
		k.rampers[i] = param.NewRamper(s.Default)
	}
	return k
}

// SetLogger replaces the lifecycle logger.
func (k *Kernel) SetLogger(l *debug.Logger) {
	if l != nil {
		k.logger = l
	}
}

// Init allocates per-channel state for the given layout and re-anchors every
// ramper on its current target.
func (k *Kernel) Init(channels int, sampleRate float64) {
	if channels <= 0 || sampleRate <= 0 {
		k.logger.Fatal("intensifier: invalid layout %d channels @ %g Hz", channels, sampleRate)
	}
	k.sampleRate = sampleRate
	k.rampDuration = dsp.RampSamples(sampleRate)
	for _, r := range k.rampers {
		r.Init()
	}
	k.engine.Init(sampleRate, channels)
	k.initialized = true

	k.logger.Info("intensifier: init %d channel(s) @ %.0f Hz, ramp %d, latency %d samples",
		channels, sampleRate, k.rampDuration, k.engine.LatencySamples())
}

// Deinit releases buffers and engine state. Init must be called again
// before the next Process.
func (k *Kernel) Deinit() {
	k.engine = dynamics.Intensifier{}
	k.in, k.out = nil, nil
	k.initialized = false
	k.logger.Debug("intensifier: deinit")
}

// Reset clears the ramp counters and all detection state.
func (k *Kernel) Reset() {
	for _, r := range k.rampers {
		r.Reset()
	}
	k.engine.Reset()
	k.logger.Debug("intensifier: reset")
}

// IsBypassed reports whether processing is bypassed.
func (k *Kernel) IsBypassed() bool {
	return k.bypassed
}

// SetBypass toggles bypass. State is kept as is in both directions.
func (k *Kernel) SetBypass(bypassed bool) {
	k.bypassed = bypassed
}

// SetParameter clamps value to the parameter range and publishes it as the
// new target. Unknown addresses and NaN values are ignored.
func (k *Kernel) SetParameter(address uint32, value float32) {
	if address >= ParamCount || value != value {
		return
	}
	k.rampers[address].SetTarget(specs[address].Clamp(value))
}

// GetParameter returns the target of a parameter, or 0 for an unknown
// address. The ramped value is never returned because it is owned by the
// render thread.
func (k *Kernel) GetParameter(address uint32) float32 {
	if address >= ParamCount {
		return 0
	}
	return k.rampers[address].Target()
}

// StartRamp ramps a parameter to the clamped value over duration frames.
// Unknown addresses and NaN values are ignored.
func (k *Kernel) StartRamp(address uint32, value float32, duration uint32) {
	if address >= ParamCount || value != value {
		return
	}
	k.rampers[address].StartRamp(specs[address].Clamp(value), duration)
}

// SetBuffers binds the planar buffers used by Process.
func (k *Kernel) SetBuffers(in, out [][]float32) {
	k.in = in
	k.out = out
}

// Process renders frames samples starting at offset in the bound buffers.
// Misuse (no Init, wrong channel count, short buffers) is logged as fatal
// and panics.
func (k *Kernel) Process(frames, offset int) {
	if frames <= 0 {
		return
	}
	k.checkBuffers(frames, offset)
	end := offset + frames
	channels := k.engine.Channels()

	if k.bypassed {
		for ch := 0; ch < channels; ch++ {
			if dsp.SameBuffer(k.in[ch], k.out[ch]) {
				continue
			}
			copy(k.out[ch][offset:end], k.in[ch][offset:end])
		}
		return
	}

	for _, r := range k.rampers {
		r.CheckForUpdate(k.rampDuration)
	}

	for i := offset; i < end; i++ {
		k.engine.SetFrame(dynamics.Settings{
			InputDB:         k.rampers[ParamInputAmount].ValueAndAdvance(),
			AttackAmountDB:  k.rampers[ParamAttackAmount].ValueAndAdvance(),
			ReleaseAmountDB: k.rampers[ParamReleaseAmount].ValueAndAdvance(),
			AttackMs:        k.rampers[ParamAttackTime].ValueAndAdvance(),
			ReleaseSeconds:  k.rampers[ParamReleaseTime].ValueAndAdvance(),
			OutputDB:        k.rampers[ParamOutputAmount].ValueAndAdvance(),
		})
		for ch := 0; ch < channels; ch++ {
			k.out[ch][i] = k.engine.ProcessSample(ch, k.in[ch][i])
		}
	}

	k.engine.Sanitize()
}

// ProcessEvents renders a block while applying ramp events at their frame
// offsets (relative to offset). Events must be ordered by offset.
func (k *Kernel) ProcessEvents(frames, offset int, events []process.RampEvent) {
	process.Split(frames, events,
		func(e process.RampEvent) { k.StartRamp(e.Address, e.Value, e.Duration) },
		func(o, n int) { k.Process(n, offset+o) },
	)
}

func (k *Kernel) checkBuffers(frames, offset int) {
	if !k.initialized {
		k.logger.Fatal("intensifier: Process called before Init")
	}
	channels := k.engine.Channels()
	if len(k.in) != channels || len(k.out) != channels {
		k.logger.Fatal("intensifier: buffers have %d in / %d out channels, kernel has %d",
			len(k.in), len(k.out), channels)
	}
	if offset < 0 {
		k.logger.Fatal("intensifier: negative buffer offset %d", offset)
	}
	end := offset + frames
	for ch := 0; ch < channels; ch++ {
		if len(k.in[ch]) < end || len(k.out[ch]) < end {
			k.logger.Fatal("intensifier: channel %d buffers shorter than offset+frames (%d)", ch, end)
		}
	}
}

// LatencySamples returns the alignment delay of the dry path.
func (k *Kernel) LatencySamples() int {
	return k.engine.LatencySamples()
}

// ChannelState returns the diagnostics of channel ch after the last block.
func (k *Kernel) ChannelState(ch int) dynamics.Diagnostics {
	return k.engine.Diagnostics(ch)
}

// ChannelCount returns the configured channel count.
func (k *Kernel) ChannelCount() int {
	return k.engine.Channels()
}

// SampleRate returns the configured sample rate.
func (k *Kernel) SampleRate() float64 {
	return k.sampleRate
}

// RampDuration returns the dezipper ramp length in samples.
func (k *Kernel) RampDuration() uint32 {
	return k.rampDuration
}

// Targets returns every parameter target in address order.
func (k *Kernel) Targets() Values {
	var v Values
	for i, r := range k.rampers {
		v[i] = r.Target()
	}
	return v
}

// Apply publishes every value through SetParameter.
func (k *Kernel) Apply(v Values) {
	for i, x := range v {
		k.SetParameter(uint32(i), x)
	}
}
