// Package param provides parameter definitions and audio-thread parameter ramping.
package param

import (
	"fmt"
	"strconv"
)

// Parameter describes a plugin parameter: its address, range and display.
// Values are plain (in the parameter's unit), never normalized.
type Parameter struct {
	ID           uint32
	Identifier   string // Stable key used by preset files (e.g. "attackAmount")
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64
	Flags        uint32

	// Value formatting
	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	CanRamp     uint32 = 1 << 2
	IsHidden    uint32 = 1 << 4
)

// Clamp limits a plain value to the parameter range.
func (p *Parameter) Clamp(value float64) float64 {
	if value < p.Min {
		return p.Min
	}
	if value > p.Max {
		return p.Max
	}
	return value
}

// Clamp32 is the float32 version of Clamp.
func (p *Parameter) Clamp32(value float32) float32 {
	return float32(p.Clamp(float64(value)))
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns the display string for a plain value.
func (p *Parameter) FormatValue(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string to a clamped plain value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Clamp(plain), nil
	}
	plain, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return p.Clamp(plain), nil
}
