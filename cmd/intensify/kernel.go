package main

import (
	"github.com/justyntemme/intensifier/pkg/intensifier"
	"github.com/justyntemme/intensifier/pkg/preset"
)

// ParamFlags override single parameters after the preset is applied.
type ParamFlags struct {
	InputAmount   *float64 `help:"Input amount in dB (-40 to 15)." placeholder:"DB"`
	AttackAmount  *float64 `help:"Attack amount in dB (-40 to 30)." placeholder:"DB"`
	ReleaseAmount *float64 `help:"Release amount in dB (-40 to 30)." placeholder:"DB"`
	AttackTime    *float64 `help:"Attack time in ms (0 to 500)." placeholder:"MS"`
	ReleaseTime   *float64 `help:"Release time in s (0 to 5)." placeholder:"S"`
	OutputAmount  *float64 `help:"Output amount in dB (-40 to 15)." placeholder:"DB"`
}

// values returns the overrides that were given, keyed by identifier.
func (p ParamFlags) values() map[string]float32 {
	flags := [intensifier.ParamCount]*float64{
		intensifier.ParamInputAmount:   p.InputAmount,
		intensifier.ParamAttackAmount:  p.AttackAmount,
		intensifier.ParamReleaseAmount: p.ReleaseAmount,
		intensifier.ParamAttackTime:    p.AttackTime,
		intensifier.ParamReleaseTime:   p.ReleaseTime,
		intensifier.ParamOutputAmount:  p.OutputAmount,
	}
	out := make(map[string]float32)
	for _, s := range intensifier.Specs() {
		if v := flags[s.Address]; v != nil {
			out[s.Identifier] = float32(*v)
		}
	}
	return out
}

// PresetFlags select the starting preset.
type PresetFlags struct {
	Preset     string `short:"p" help:"Preset name." default:"${preset}" placeholder:"NAME"`
	PresetFile string `help:"YAML file with user presets." type:"path" placeholder:"FILE"`
}

// load reads the preset file, if any, and resolves the named preset.
func (f PresetFlags) load() (preset.Preset, *preset.File, error) {
	var file *preset.File
	if f.PresetFile != "" {
		var err error
		if file, err = preset.Load(f.PresetFile); err != nil {
			return preset.Preset{}, nil, err
		}
	}
	p, err := preset.Lookup(f.Preset, file)
	if err != nil {
		return preset.Preset{}, nil, err
	}
	return p, file, nil
}

// configure creates a kernel holding the preset values plus overrides. The
// returned preset includes the overrides.
func configure(g *Globals, pf PresetFlags, overrides ParamFlags) (*intensifier.Kernel, preset.Preset, error) {
	p, _, err := pf.load()
	if err != nil {
		return nil, preset.Preset{}, err
	}
	p = p.With(overrides.values())
	k := intensifier.New()
	k.SetLogger(g.log)
	if err := preset.Apply(k, p); err != nil {
		return nil, preset.Preset{}, err
	}
	g.log.Debug("preset %q: %v", p.Name, k.Targets())
	return k, p, nil
}
