// Package preset provides the factory presets and YAML preset files for
// the Intensifier.
package preset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/intensifier/pkg/intensifier"
)

var (
	// ErrUnknownPreset is returned when a preset name matches nothing.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrUnknownParameter is returned for a parameter identifier that the
	// processor does not have.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrInvalidValue is returned for a NaN or infinite parameter value.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// DefaultName is the preset applied when none is selected.
const DefaultName = "Subtle"

// Preset is a named set of parameter values keyed by identifier.
// Parameters missing from Params keep their default.
type Preset struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Params      map[string]float32 `yaml:"params"`
}

// File is the on-disk preset collection.
type File struct {
	Presets []Preset `yaml:"presets"`
}

var factory = []Preset{
	{
		Name:        "Subtle",
		Description: "Softened attacks with a little extra sustain",
		Params: map[string]float32{
			"inputAmount":   0,
			"attackAmount":  -10,
			"releaseAmount": 5,
			"attackTime":    20,
			"releaseTime":   1,
			"outputAmount":  0,
		},
	},
}

// Factory returns the built-in presets.
func Factory() []Preset {
	out := make([]Preset, len(factory))
	for i, p := range factory {
		out[i] = p.clone()
	}
	return out
}

func (p Preset) clone() Preset {
	params := make(map[string]float32, len(p.Params))
	for k, v := range p.Params {
		params[k] = v
	}
	p.Params = params
	return p
}

// With returns a copy of p with overrides, keyed by identifier, replacing
// or adding parameter values.
func (p Preset) With(overrides map[string]float32) Preset {
	out := p.clone()
	for id, v := range overrides {
		out.Params[id] = v
	}
	return out
}

// Values resolves the preset into a full parameter set. Values are clamped to
// each parameter's range; NaN and infinite values are an error.
func (p Preset) Values() (intensifier.Values, error) {
	v := intensifier.DefaultValues()
	for id, x := range p.Params {
		addr, ok := intensifier.AddressOf(id)
		if !ok {
			return v, fmt.Errorf("preset %q: %w: %s", p.Name, ErrUnknownParameter, id)
		}
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return v, fmt.Errorf("preset %q: %w: %s = %g", p.Name, ErrInvalidValue, id, x)
		}
		spec, _ := intensifier.SpecFor(addr)
		v[addr] = spec.Clamp(x)
	}
	return v, nil
}

// FromValues builds a preset holding every parameter in v.
func FromValues(name string, v intensifier.Values) Preset {
	p := Preset{Name: name, Params: make(map[string]float32, len(v))}
	for _, s := range intensifier.Specs() {
		p.Params[s.Identifier] = v[s.Address]
	}
	return p
}

// Load reads and validates a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Save writes the preset file as YAML.
func Save(path string, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// Validate checks for empty or duplicate names, unknown parameters and
// non-finite values.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Presets))
	for i, p := range f.Presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("duplicate preset %q", name)
		}
		seen[key] = true
		if _, err := p.Values(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a preset by case-insensitive name. File presets shadow
// factory presets of the same name; f may be nil.
func Lookup(name string, f *File) (Preset, error) {
	if f != nil {
		for _, p := range f.Presets {
			if strings.EqualFold(p.Name, name) {
				return p, nil
			}
		}
	}
	for _, p := range factory {
		if strings.EqualFold(p.Name, name) {
			return p.clone(), nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Names lists every available preset name, factory first, then file presets
// sorted by name. Shadowed factory presets are listed once.
func Names(f *File) []string {
	var names []string
	seen := make(map[string]bool)
	var user []string
	if f != nil {
		for _, p := range f.Presets {
			seen[strings.ToLower(p.Name)] = true
			user = append(user, p.Name)
		}
	}
	for _, p := range factory {
		if !seen[strings.ToLower(p.Name)] {
			names = append(names, p.Name)
		}
	}
	sort.Strings(user)
	return append(names, user...)
}

// Put adds p to the file, replacing any preset with the same name.
func (f *File) Put(p Preset) {
	for i := range f.Presets {
		if strings.EqualFold(f.Presets[i].Name, p.Name) {
			f.Presets[i] = p
			return
		}
	}
	f.Presets = append(f.Presets, p)
}

// Target receives parameter values by address. *intensifier.Kernel is a
// Target.
type Target interface {
	SetParameter(address uint32, value float32)
}

// Apply resolves the preset and publishes every value to t.
func Apply(t Target, p Preset) error {
	v, err := p.Values()
	if err != nil {
		return err
	}
	for addr, x := range v {
		t.SetParameter(uint32(addr), x)
	}
	return nil
}
