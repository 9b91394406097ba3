// Package dynamics provides the transient-shaping dynamics engine.
package dynamics

import (
	"github.com/justyntemme/intensifier/pkg/dsp"
	"github.com/justyntemme/intensifier/pkg/dsp/delay"
	"github.com/justyntemme/intensifier/pkg/dsp/envelope"
	"github.com/justyntemme/intensifier/pkg/dsp/gain"
)

// Engine constants
const (
	FastWindowSeconds = 0.010 // attack follower window
	SlowWindowSeconds = 0.020 // release follower window

	AlignmentDelayMs = 20.0
	DelayCapacityMs  = 50.0

	// Sensitivity scales a detected envelope difference by the dB amount.
	Sensitivity = 2.5
)

// Settings holds one frame of parameter values in plain units.
type Settings struct {
	InputDB         float32
	AttackAmountDB  float32
	ReleaseAmountDB float32
	AttackMs        float32
	ReleaseSeconds  float32
	OutputDB        float32
}

// Diagnostics is the per-channel record of the last frame's gain terms.
// It is bookkeeping only and never feeds back into the audio.
type Diagnostics struct {
	InputDB   float32
	AttackDB  float32
	ReleaseDB float32
	OutputDB  float32
}

// Clear zeroes all fields.
func (d *Diagnostics) Clear() {
	*d = Diagnostics{}
}

// Sanitize replaces non-finite, denormal and absurd values with zero.
func (d *Diagnostics) Sanitize() {
	d.InputDB = dsp.FlushBad(d.InputDB)
	d.AttackDB = dsp.FlushBad(d.AttackDB)
	d.ReleaseDB = dsp.FlushBad(d.ReleaseDB)
	d.OutputDB = dsp.FlushBad(d.OutputDB)
}

// channelState is the detection chain of a single channel.
type channelState struct {
	fast envelope.MovingRMS
	slow envelope.MovingRMS

	attackRise  envelope.Slide // slow reference for the attack branch
	attackFall  envelope.Slide // smooths the rectified attack difference
	releaseFall envelope.Slide // slow reference for the release branch

	delay delay.Line
	diag  Diagnostics
}

func (c *channelState) clear() {
	c.fast.Clear()
	c.slow.Clear()
	c.attackRise.Clear()
	c.attackFall.Clear()
	c.releaseFall.Clear()
	c.delay.Clear()
	c.diag.Clear()
}

// Intensifier separates attack and release transitions of a signal and
// applies independent gain to each.
//
// Every channel owns its followers, smoothers and alignment delay, so
// channels are processed independently. Parameters are shared: call
// SetFrame once per frame, then ProcessSample for each channel.
type Intensifier struct {
	sampleRate float64
	channels   []channelState

	// Per-frame coefficients
	inputGain    float32
	outputGain   float32
	attackScale  float32
	releaseScale float32
	attackSteps  float32
	releaseSteps float32
	settings     Settings
}

// NewIntensifier creates an engine for the given rate and channel count.
func NewIntensifier(sampleRate float64, channels int) *Intensifier {
	e := &Intensifier{}
	e.Init(sampleRate, channels)
	return e
}

// Init allocates the per-channel state. It must not be called from the
// render thread.
func (e *Intensifier) Init(sampleRate float64, channels int) {
	if channels < 0 {
		channels = 0
	}
	e.sampleRate = sampleRate
	e.channels = make([]channelState, channels)
	for i := range e.channels {
		c := &e.channels[i]
		c.fast.Init(sampleRate, envelope.WindowForDuration(sampleRate, FastWindowSeconds))
		c.slow.Init(sampleRate, envelope.WindowForDuration(sampleRate, SlowWindowSeconds))
		c.delay.Init(sampleRate, DelayCapacityMs)
		c.delay.SetDelayMs(AlignmentDelayMs)
		c.delay.SetFeedback(0)
	}
	e.SetFrame(DefaultSettings())
	e.Reset()
}

// DefaultSettings returns the neutral parameter values.
func DefaultSettings() Settings {
	return Settings{AttackMs: 20, ReleaseSeconds: 1}
}

// Reset clears all detection state and diagnostics without reallocating.
func (e *Intensifier) Reset() {
	for i := range e.channels {
		e.channels[i].clear()
	}
}

// SampleRate returns the configured sample rate.
func (e *Intensifier) SampleRate() float64 {
	return e.sampleRate
}

// Channels returns the number of channels.
func (e *Intensifier) Channels() int {
	return len(e.channels)
}

// LatencySamples returns the alignment delay applied to the dry path.
func (e *Intensifier) LatencySamples() int {
	if len(e.channels) == 0 {
		return 0
	}
	return e.channels[0].delay.DelaySamples()
}

// SetFrame derives this frame's gains and smoother step counts.
func (e *Intensifier) SetFrame(s Settings) {
	e.settings = s
	e.inputGain = gain.DbToLinear32(s.InputDB)
	e.outputGain = gain.DbToLinear32(s.OutputDB)
	e.attackScale = s.AttackAmountDB * Sensitivity
	e.releaseScale = s.ReleaseAmountDB * Sensitivity

	perMs := float32(e.sampleRate / 1000.0)
	e.attackSteps = s.AttackMs * perMs
	e.releaseSteps = s.ReleaseSeconds * 1000 * perMs
}

// ProcessSample runs one sample of channel ch through the engine.
func (e *Intensifier) ProcessSample(ch int, x float32) float32 {
	c := &e.channels[ch]

	c.attackRise.SetRise(e.attackSteps)
	c.attackFall.SetFall(e.attackSteps)
	c.releaseFall.SetFall(e.releaseSteps)

	g := x * e.inputGain

	// Attack: how far the fast envelope runs ahead of a slowly rising copy.
	fast := c.fast.Push(g)
	slow := c.attackRise.Push(fast)
	var rising float32
	if fast >= slow {
		rising = fast - slow
	}
	attackDB := c.attackFall.Push(rising) * e.attackScale

	// Release: how far the envelope drops below a slowly falling copy.
	fast2 := c.slow.Push(g)
	slow2 := c.releaseFall.Push(fast2)
	var falling float32
	if fast2 <= slow2 {
		falling = slow2 - fast2
	}
	releaseDB := falling * e.releaseScale

	mix := gain.DbToLinear32(attackDB+releaseDB) * e.outputGain

	c.delay.Push(g)
	out := dsp.FlushBad(c.delay.Output() * mix)

	c.diag.InputDB = e.settings.InputDB
	c.diag.AttackDB = attackDB
	c.diag.ReleaseDB = releaseDB
	c.diag.OutputDB = attackDB + releaseDB + e.settings.OutputDB

	return out
}

// Sanitize scrubs every channel's diagnostics. Call once per block.
func (e *Intensifier) Sanitize() {
	for i := range e.channels {
		e.channels[i].diag.Sanitize()
	}
}

// Diagnostics returns a copy of channel ch's record.
func (e *Intensifier) Diagnostics(ch int) Diagnostics {
	return e.channels[ch].diag
}
