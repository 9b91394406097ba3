package intensifier

import (
	"fmt"

	"github.com/justyntemme/intensifier/pkg/dsp/dynamics"
	"github.com/justyntemme/intensifier/pkg/framework/param"
)

// Parameter addresses
const (
	ParamInputAmount uint32 = iota
	ParamAttackAmount
	ParamReleaseAmount
	ParamAttackTime
	ParamReleaseTime
	ParamOutputAmount

	ParamCount
)

// Spec describes one parameter of the processor.
type Spec struct {
	Address    uint32
	Identifier string
	Name       string
	Min        float32
	Max        float32
	Default    float32
	Unit       string
}

// Clamp limits v to the parameter range. NaN maps to the default.
func (s Spec) Clamp(v float32) float32 {
	if v != v {
		return s.Default
	}
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// specs is indexed by address and read by the render thread, so it is a
// fixed array rather than the locked registry.
var specs = [ParamCount]Spec{
	{ParamInputAmount, "inputAmount", "Input Amount", -40, 15, 0, "dB"},
	{ParamAttackAmount, "attackAmount", "Attack Amount", -40, 30, 0, "dB"},
	{ParamReleaseAmount, "releaseAmount", "Release Amount", -40, 30, 0, "dB"},
	{ParamAttackTime, "attackTime", "Attack Time", 0, 500, 20, "ms"},
	{ParamReleaseTime, "releaseTime", "Release Time", 0, 5, 1, "s"},
	{ParamOutputAmount, "outputAmount", "Output Amount", -40, 15, 0, "dB"},
}

// Specs returns the parameter table in address order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs[:])
	return out
}

// SpecFor returns the parameter at address.
func SpecFor(address uint32) (Spec, bool) {
	if address >= ParamCount {
		return Spec{}, false
	}
	return specs[address], true
}

// AddressOf resolves a parameter identifier such as "attackAmount".
func AddressOf(identifier string) (uint32, bool) {
	for _, s := range specs {
		if s.Identifier == identifier {
			return s.Address, true
		}
	}
	return 0, false
}

// NewRegistry builds the control-side parameter registry with display
// formatting for each parameter.
func NewRegistry() *param.Registry {
	r := param.NewRegistry()
	for _, s := range specs {
		var b *param.Builder
		switch s.Unit {
		case "dB":
			b = param.DecibelParameter(s.Address, s.Name, float64(s.Min), float64(s.Max), float64(s.Default))
		case "ms":
			b = param.TimeParameter(s.Address, s.Name, float64(s.Min), float64(s.Max), float64(s.Default))
		case "s":
			b = param.SecondsParameter(s.Address, s.Name, float64(s.Min), float64(s.Max), float64(s.Default))
		}
		if err := r.Add(b.Identifier(s.Identifier).Build()); err != nil {
			// The table above is static; a duplicate is a programming error.
			panic(fmt.Sprintf("intensifier: %v", err))
		}
	}
	return r
}

// Values holds one value per parameter, indexed by address.
type Values [ParamCount]float32

// DefaultValues returns every parameter at its default.
func DefaultValues() Values {
	var v Values
	for i, s := range specs {
		v[i] = s.Default
	}
	return v
}

// Settings converts the values to the engine's frame settings.
func (v Values) Settings() dynamics.Settings {
	return dynamics.Settings{
		InputDB:         v[ParamInputAmount],
		AttackAmountDB:  v[ParamAttackAmount],
		ReleaseAmountDB: v[ParamReleaseAmount],
		AttackMs:        v[ParamAttackTime],
		ReleaseSeconds:  v[ParamReleaseTime],
		OutputDB:        v[ParamOutputAmount],
	}
}
