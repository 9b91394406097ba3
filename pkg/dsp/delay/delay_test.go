package delay

import (
	"math"
	"testing"
)

func TestLineAlignment(t *testing.T) {
	for _, k := range []int{0, 1, 7, 882} {
		d := New(44100, 50)
		if got := d.SetDelaySamples(k); got != k {
			t.Fatalf("SetDelaySamples(%d) applied %d", k, got)
		}

		const n = 5000
		for i := 0; i < n; i++ {
			s := float32(i + 1)
			d.Push(s)

			var want float32
			if i >= k {
				want = float32(i - k + 1)
			}
			if got := d.Output(); got != want {
				t.Fatalf("delay %d, push %d: Output() = %g, want %g", k, i, got, want)
			}
		}
	}
}

func TestLineSetDelayMs(t *testing.T) {
	d := New(44100, 50)

	if got := d.SetDelayMs(20); got != 882 {
		t.Errorf("SetDelayMs(20) = %d samples, want 882", got)
	}
	if d.DelaySamples() != 882 {
		t.Errorf("DelaySamples() = %d", d.DelaySamples())
	}
	if got := d.SetDelayMs(500); got != d.MaxDelaySamples() {
		t.Errorf("SetDelayMs beyond capacity = %d, want clamp to %d", got, d.MaxDelaySamples())
	}
	if d.MaxDelaySamples() != 2205 {
		t.Errorf("MaxDelaySamples() = %d, want 2205", d.MaxDelaySamples())
	}
	if got := d.SetDelayMs(-3); got != 0 {
		t.Errorf("negative delay should clamp to 0, got %d", got)
	}
}

func TestLineClampAfterShrink(t *testing.T) {
	d := New(48000, 50)
	d.SetDelayMs(40)
	d.Init(48000, 10)
	if d.DelaySamples() != 480 {
		t.Errorf("delay after shrinking capacity = %d, want 480", d.DelaySamples())
	}
}

func TestLineFeedback(t *testing.T) {
	d := New(1000, 10) // 10 samples of capacity
	d.SetDelaySamples(4)
	d.SetFeedback(0.5)

	out := make([]float32, 20)
	for i := range out {
		var x float32
		if i == 0 {
			x = 1
		}
		out[i] = d.Process(x)
	}

	// Repeats every 4 samples, halving each time.
	want := map[int]float32{4: 1, 8: 0.5, 12: 0.25, 16: 0.125}
	for i, v := range out {
		w := want[i]
		if math.Abs(float64(v-w)) > 1e-7 {
			t.Errorf("sample %d = %g, want %g", i, v, w)
		}
	}
}

func TestLineClear(t *testing.T) {
	d := New(44100, 5)
	d.SetDelaySamples(3)
	for i := 0; i < 10; i++ {
		d.Push(1)
	}
	d.Clear()
	if d.Output() != 0 {
		t.Errorf("Output() after Clear = %g", d.Output())
	}
	for i := 0; i < 3; i++ {
		if got := d.Process(0.5); got != 0 {
			t.Errorf("stale sample %g survived Clear", got)
		}
	}
	if got := d.Process(0.5); got != 0.5 {
		t.Errorf("delayed sample = %g, want 0.5", got)
	}
}

func BenchmarkLinePush(b *testing.B) {
	d := New(44100, 50)
	d.SetDelayMs(20)
	for i := 0; i < b.N; i++ {
		d.Push(float32(i & 0xff))
	}
}
