package debug

import (
	"fmt"
	"math"

	"github.com/justyntemme/intensifier/pkg/dsp/gain"
)

// AudioAnalyzer measures signal statistics over one or more buffers. Feed it
// with Add and read the totals with Result.
type AudioAnalyzer struct {
	clippingThreshold float32
	silenceThreshold  float32
	dcThreshold       float32

	count      int
	sum        float64
	sumSquares float64
	peak       float32
	clipped    int
	nonFinite  int
	crossings  int
	last       float32
}

// NewAudioAnalyzer creates an analyzer with default thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		silenceThreshold:  0.0001,
		dcThreshold:       0.01,
	}
}

// AnalysisResult contains the accumulated statistics.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NonFinite      int
	ZeroCrossings  int
	Silent         bool
}

// PeakDB returns the peak level in dBFS.
func (r AnalysisResult) PeakDB() float32 {
	return gain.LinearToDb32(r.Peak)
}

// RMSDB returns the RMS level in dBFS.
func (r AnalysisResult) RMSDB() float32 {
	return gain.LinearToDb32(r.RMS)
}

// CrestDB returns the peak to RMS ratio in dB, or 0 for silence.
func (r AnalysisResult) CrestDB() float32 {
	if r.RMS <= 0 || r.Peak <= 0 {
		return 0
	}
	return r.PeakDB() - r.RMSDB()
}

// Reset forgets everything added so far.
func (a *AudioAnalyzer) Reset() {
	a.count, a.sum, a.sumSquares = 0, 0, 0
	a.peak, a.last = 0, 0
	a.clipped, a.nonFinite, a.crossings = 0, 0, 0
}

// Add accumulates the statistics of buffer. Non-finite samples are counted
// and otherwise skipped.
func (a *AudioAnalyzer) Add(buffer []float32) {
	for _, sample := range buffer {
		x := float64(sample)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			a.nonFinite++
			continue
		}

		abs := float32(math.Abs(x))
		if abs > a.peak {
			a.peak = abs
		}
		if abs >= a.clippingThreshold {
			a.clipped++
		}
		if a.count > 0 && (a.last < 0) != (sample < 0) {
			a.crossings++
		}
		a.last = sample

		a.sum += x
		a.sumSquares += x * x
		a.count++
	}
}

// AddChannels accumulates every channel of a planar block.
func (a *AudioAnalyzer) AddChannels(channels [][]float32) {
	for _, ch := range channels {
		a.Add(ch)
	}
}

// Result returns the statistics accumulated so far.
func (a *AudioAnalyzer) Result() AnalysisResult {
	r := AnalysisResult{
		Samples:        a.count,
		Peak:           a.peak,
		ClippedSamples: a.clipped,
		NonFinite:      a.nonFinite,
		ZeroCrossings:  a.crossings,
	}
	if a.count > 0 {
		r.RMS = float32(math.Sqrt(a.sumSquares / float64(a.count)))
		r.DC = float32(a.sum / float64(a.count))
	}
	r.Silent = r.RMS < a.silenceThreshold
	return r
}

// Issues describes anything suspicious in the accumulated signal.
func (a *AudioAnalyzer) Issues(name string) []string {
	r := a.Result()
	var issues []string
	if r.NonFinite > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d non-finite samples", name, r.NonFinite))
	}
	if r.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, r.ClippedSamples))
	}
	if math.Abs(float64(r.DC)) > float64(a.dcThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, r.DC))
	}
	return issues
}

// LogIssues writes every issue found by a to l as a warning.
func LogIssues(l *Logger, a *AudioAnalyzer, name string) {
	for _, issue := range a.Issues(name) {
		l.Warn("%s", issue)
	}
}
