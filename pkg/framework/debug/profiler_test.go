package debug

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestProfiler(t *testing.T) {
	t.Run("BasicProfiling", func(t *testing.T) {
		p := NewProfiler(100)

		stop := p.Start("test")
		time.Sleep(10 * time.Millisecond)
		stop()

		m, exists := p.GetMeasurement("test")
		if !exists {
			t.Fatal("Measurement not found")
		}
		if m.Count() != 1 {
			t.Errorf("Expected count 1, got %d", m.Count())
		}
		if m.Last() < 10*time.Millisecond {
			t.Error("Timing seems too short")
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		p := NewProfiler(100)
		for _, d := range []time.Duration{3, 1, 2, 5, 4} {
			p.Record("stats", d*time.Millisecond)
		}

		m, _ := p.GetMeasurement("stats")
		if m.Count() != 5 || m.Total() != 15*time.Millisecond {
			t.Errorf("count %d total %v", m.Count(), m.Total())
		}
		if m.Min() != time.Millisecond || m.Max() != 5*time.Millisecond {
			t.Errorf("min %v max %v", m.Min(), m.Max())
		}
		if m.Average() != 3*time.Millisecond {
			t.Errorf("average %v", m.Average())
		}
		if got := m.Percentile(50); got != 3*time.Millisecond {
			t.Errorf("p50 = %v", got)
		}
		if got := m.Percentile(100); got != 5*time.Millisecond {
			t.Errorf("p100 = %v", got)
		}
	})

	t.Run("SampleWindow", func(t *testing.T) {
		p := NewProfiler(3)
		for i := 1; i <= 5; i++ {
			p.Record("window", time.Duration(i))
		}
		m, _ := p.GetMeasurement("window")
		// Samples 1 and 2 were overwritten.
		if got := m.Percentile(0); got != 3 {
			t.Errorf("p0 = %v, want 3", got)
		}
		if m.Min() != 1 {
			t.Errorf("Min() = %v, want 1", m.Min())
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		p := NewProfiler(100)
		p.SetEnabled(false)

		stop := p.Start("disabled")
		stop()

		if _, exists := p.GetMeasurement("disabled"); exists {
			t.Error("Measurement should not exist when disabled")
		}
	})

	t.Run("Report", func(t *testing.T) {
		p := NewProfiler(100)
		p.Record("render", time.Millisecond)
		p.Record("decode", 2*time.Millisecond)

		report := p.Report()
		if strings.Index(report, "decode") > strings.Index(report, "render") {
			t.Error("Report sections not sorted")
		}
		if !strings.Contains(report, "Count:") {
			t.Error("Report missing count")
		}

		p.Reset()
		if len(p.GetAllMeasurements()) != 0 {
			t.Error("Measurements not cleared")
		}
		if p.Report() != "No measurements recorded" {
			t.Error("Empty report text changed")
		}
	})
}

func TestRenderProfiler(t *testing.T) {
	t.Run("RealtimeFactor", func(t *testing.T) {
		r := NewRenderProfiler(48000)
		if r.RealtimeFactor() != 0 || r.CPULoad() != 0 {
			t.Error("Empty profiler should report zero")
		}

		// 48000 frames in 100 ms is 10x real time.
		for i := 0; i < 10; i++ {
			r.frames.Add(4800)
			r.Record(BlockSection, 10*time.Millisecond)
		}
		if r.AudioDuration() != time.Second {
			t.Errorf("AudioDuration() = %v", r.AudioDuration())
		}
		if got := r.RealtimeFactor(); math.Abs(got-10) > 1e-9 {
			t.Errorf("RealtimeFactor() = %g, want 10", got)
		}
		if got := r.CPULoad(); math.Abs(got-10) > 1e-9 {
			t.Errorf("CPULoad() = %g, want 10", got)
		}

		r.Reset()
		if r.Frames() != 0 {
			t.Error("Reset kept the frame count")
		}
	})

	t.Run("Block", func(t *testing.T) {
		r := NewRenderProfiler(44100)
		done := r.Block(441)
		done()
		if r.Frames() != 441 {
			t.Errorf("Frames() = %d", r.Frames())
		}
		if m, ok := r.GetMeasurement(BlockSection); !ok || m.Count() != 1 {
			t.Error("Block not recorded")
		}

		r.SetEnabled(false)
		r.Block(441)()
		if r.Frames() != 441 {
			t.Error("Disabled profiler counted frames")
		}
	})

	t.Run("AudioReport", func(t *testing.T) {
		r := NewRenderProfiler(44100)
		r.Block(256)()

		report := r.AudioReport()
		for _, want := range []string{"44100 Hz", "Realtime Factor:", "CPU Load:", BlockSection} {
			if !strings.Contains(report, want) {
				t.Errorf("Report missing %q", want)
			}
		}
	})
}

func BenchmarkProfiler(b *testing.B) {
	p := NewProfiler(1000)

	b.Run("StartStop", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			stop := p.Start("bench")
			stop()
		}
	})

	b.Run("Disabled", func(b *testing.B) {
		p.SetEnabled(false)
		for i := 0; i < b.N; i++ {
			stop := p.Start("bench")
			stop()
		}
	})
}
