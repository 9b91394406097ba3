package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects wall-clock timings for named sections.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section. The last
// maxSamples durations are kept for percentiles.
type Measurement struct {
	name        string
	count       uint64
	totalTime   time.Duration
	minTime     time.Duration
	maxTime     time.Duration
	lastTime    time.Duration
	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates an enabled profiler keeping maxSamples recent
// durations per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section. Call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record stores one duration for a section.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			name:    name,
			minTime: elapsed,
			maxTime: elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.count++
	m.totalTime += elapsed
	m.lastTime = elapsed
	if elapsed < m.minTime {
		m.minTime = elapsed
	}
	if elapsed > m.maxTime {
		m.maxTime = elapsed
	}

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIndex] = elapsed
	}
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// GetMeasurement returns a snapshot of the named section.
func (p *Profiler) GetMeasurement(name string) (*Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return nil, false
	}
	return m.snapshot(), true
}

// GetAllMeasurements returns snapshots of every section.
func (p *Profiler) GetAllMeasurements() map[string]*Measurement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[string]*Measurement, len(p.measurements))
	for k, v := range p.measurements {
		result[k] = v.snapshot()
	}
	return result
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report lists every section in name order.
func (p *Profiler) Report() string {
	measurements := p.GetAllMeasurements()
	if len(measurements) == 0 {
		return "No measurements recorded"
	}

	names := make([]string, 0, len(measurements))
	for name := range measurements {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")
	for _, name := range names {
		m := measurements[name]
		fmt.Fprintf(&sb, "%s:\n", name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.totalTime)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.minTime)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.maxTime)
		fmt.Fprintf(&sb, "  p99:     %v\n\n", m.Percentile(99))
	}
	return sb.String()
}

func (m *Measurement) snapshot() *Measurement {
	c := *m
	c.samples = append([]time.Duration(nil), m.samples...)
	return &c
}

// Name returns the section name.
func (m *Measurement) Name() string { return m.name }

// Count returns how many durations were recorded.
func (m *Measurement) Count() uint64 { return m.count }

// Total returns the sum of all durations.
func (m *Measurement) Total() time.Duration { return m.totalTime }

// Min returns the shortest duration.
func (m *Measurement) Min() time.Duration { return m.minTime }

// Max returns the longest duration.
func (m *Measurement) Max() time.Duration { return m.maxTime }

// Last returns the most recent duration.
func (m *Measurement) Last() time.Duration { return m.lastTime }

// Average returns the mean duration.
func (m *Measurement) Average() time.Duration {
	if m.count == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.count)
}

// Percentile returns the p-th percentile (0-100) of the recent samples.
func (m *Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	return sorted[int(float64(len(sorted)-1)*p/100.0)]
}

// BlockSection is the section name RenderProfiler records blocks under.
const BlockSection = "process"

// RenderProfiler times block processing and relates it to the audio
// duration rendered.
type RenderProfiler struct {
	*Profiler
	sampleRate float64
	frames     atomic.Uint64
}

// NewRenderProfiler creates a profiler for audio at sampleRate.
func NewRenderProfiler(sampleRate float64) *RenderProfiler {
	return &RenderProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
	}
}

// Block starts timing one block of frames. Call the returned func when the
// block is done.
func (r *RenderProfiler) Block(frames int) func() {
	stop := r.Start(BlockSection)
	return func() {
		stop()
		if r.IsEnabled() {
			r.frames.Add(uint64(frames))
		}
	}
}

// Frames returns the number of frames timed so far.
func (r *RenderProfiler) Frames() uint64 {
	return r.frames.Load()
}

// AudioDuration returns the duration of the audio timed so far.
func (r *RenderProfiler) AudioDuration() time.Duration {
	if r.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(r.frames.Load()) / r.sampleRate * float64(time.Second))
}

// RealtimeFactor returns audio time over processing time. Above 1 means
// faster than real time; 0 means nothing was measured.
func (r *RenderProfiler) RealtimeFactor() float64 {
	m, ok := r.GetMeasurement(BlockSection)
	if !ok || m.totalTime <= 0 {
		return 0
	}
	return float64(r.AudioDuration()) / float64(m.totalTime)
}

// CPULoad returns processing time as a percentage of the audio time.
func (r *RenderProfiler) CPULoad() float64 {
	rt := r.RealtimeFactor()
	if rt == 0 {
		return 0
	}
	return 100 / rt
}

// Reset clears timings and the frame count.
func (r *RenderProfiler) Reset() {
	r.Profiler.Reset()
	r.frames.Store(0)
}

// AudioReport appends render statistics to the section report.
func (r *RenderProfiler) AudioReport() string {
	var sb strings.Builder
	sb.WriteString(r.Report())
	sb.WriteString("\nRender Stats:\n")
	fmt.Fprintf(&sb, "  Sample Rate:     %.0f Hz\n", r.sampleRate)
	fmt.Fprintf(&sb, "  Audio Rendered:  %v\n", r.AudioDuration())
	fmt.Fprintf(&sb, "  Realtime Factor: %.1fx\n", r.RealtimeFactor())
	fmt.Fprintf(&sb, "  CPU Load:        %.2f%%\n", r.CPULoad())
	return sb.String()
}
