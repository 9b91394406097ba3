package param

import (
	"fmt"
	"strings"
)

// Common parameter formatters and parsers

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	return fmt.Sprintf("%.2f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	str = strings.TrimSuffix(str, "dB")
	str = strings.TrimSuffix(str, "db")
	return parseFloat(strings.TrimSpace(str))
}

// TimeFormatter formats millisecond values
func TimeFormatter(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// TimeParser parses time strings to milliseconds
func TimeParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))

	if strings.HasSuffix(str, "ms") {
		return parseFloat(strings.TrimSpace(strings.TrimSuffix(str, "ms")))
	}
	if strings.HasSuffix(str, "s") {
		val, err := parseFloat(strings.TrimSpace(strings.TrimSuffix(str, "s")))
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}
	return parseFloat(str)
}

// SecondsFormatter formats second values
func SecondsFormatter(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.0f ms", s*1000)
	}
	return fmt.Sprintf("%.2f s", s)
}

// SecondsParser parses time strings to seconds
func SecondsParser(str string) (float64, error) {
	ms, err := TimeParser(str)
	if err != nil {
		return 0, err
	}
	str = strings.ToLower(strings.TrimSpace(str))
	if strings.HasSuffix(str, "s") {
		return ms / 1000, nil
	}
	// bare numbers are seconds
	return ms, nil
}
