package param

import (
	"fmt"
)

// Common parameter helpers

// DecibelParameter creates a gain amount parameter in dB.
func DecibelParameter(id uint32, name string, minDB, maxDB, defaultDB float64) *Builder {
	return New(id, name).
		Range(minDB, maxDB).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}

// TimeParameter creates a time parameter in milliseconds.
func TimeParameter(id uint32, name string, minMs, maxMs, defaultMs float64) *Builder {
	return New(id, name).
		Range(minMs, maxMs).
		Default(defaultMs).
		Unit("ms").
		Formatter(TimeFormatter, TimeParser)
}

// SecondsParameter creates a time parameter in seconds.
func SecondsParameter(id uint32, name string, minS, maxS, defaultS float64) *Builder {
	return New(id, name).
		Range(minS, maxS).
		Default(defaultS).
		Unit("s").
		Formatter(SecondsFormatter, SecondsParser)
}

// Helper function to parse float with error handling
func parseFloat(s string) (float64, error) {
	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return value, nil
}
