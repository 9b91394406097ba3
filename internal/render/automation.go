package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/intensifier/pkg/dsp"
	"github.com/justyntemme/intensifier/pkg/framework/process"
	"github.com/justyntemme/intensifier/pkg/intensifier"
)

// ParseAutomation parses "identifier=value@seconds[~rampMs]" into a ramp
// event at an absolute frame. Without a ramp the standard dezipper length is
// used.
func ParseAutomation(s string, sampleRate float64) (process.RampEvent, error) {
	var e process.RampEvent

	id, rest, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return e, fmt.Errorf("automation %q: want identifier=value@seconds", s)
	}
	addr, ok := intensifier.AddressOf(strings.TrimSpace(id))
	if !ok {
		return e, fmt.Errorf("automation %q: unknown parameter %q", s, id)
	}

	value, at, ok := strings.Cut(rest, "@")
	if !ok {
		return e, fmt.Errorf("automation %q: missing @seconds", s)
	}
	at, ramp, hasRamp := strings.Cut(at, "~")

	v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return e, fmt.Errorf("automation %q: value: %w", s, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(at), 64)
	if err != nil || seconds < 0 || math.IsInf(seconds, 0) {
		return e, fmt.Errorf("automation %q: invalid time %q", s, at)
	}

	duration := dsp.RampSamples(sampleRate)
	if hasRamp {
		ms, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(ramp), "ms"), 64)
		if err != nil || ms < 0 {
			return e, fmt.Errorf("automation %q: invalid ramp %q", s, ramp)
		}
		duration = uint32(ms * 0.001 * sampleRate)
	}

	e = process.RampEvent{
		Offset:   int(math.Round(seconds * sampleRate)),
		Address:  addr,
		Value:    float32(v),
		Duration: duration,
	}
	return e, nil
}

// ScheduleAutomation parses every entry into a schedule.
func ScheduleAutomation(entries []string, sampleRate float64) (*process.Schedule, error) {
	s := process.NewSchedule()
	for _, entry := range entries {
		e, err := ParseAutomation(entry, sampleRate)
		if err != nil {
			return nil, err
		}
		s.Add(e)
	}
	return s, nil
}
