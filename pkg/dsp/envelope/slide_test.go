package envelope

import (
	"math"
	"testing"
)

func TestSlidePassthrough(t *testing.T) {
	s := NewSlide(0, 0)
	inputs := []float32{0.5, -1, 3, 3, 0, 1e-9, -0.25}
	for _, x := range inputs {
		if got := s.Push(x); got != x {
			t.Errorf("Push(%g) = %g, want passthrough", x, got)
		}
		if s.Output() != x {
			t.Errorf("Output() = %g, want %g", s.Output(), x)
		}
	}
}

func TestSlideStepCounts(t *testing.T) {
	tests := []struct {
		steps float32
		want  int
	}{
		{0, 0},
		{1, 0},
		{1.9, 0},
		{2, 2},
		{882.7, 882},
		{-5, 0},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 0},
	}

	s := &Slide{}
	for _, tt := range tests {
		s.SetRise(tt.steps)
		s.SetFall(tt.steps)
		if s.Rise() != tt.want || s.Fall() != tt.want {
			t.Errorf("steps %g: rise=%d fall=%d, want %d", tt.steps, s.Rise(), s.Fall(), tt.want)
		}
	}
}

func TestSlideStepResponse(t *testing.T) {
	const (
		n = 50
		v = float32(1.0)
	)
	s := NewSlide(n, 0)

	prev := float32(0)
	for k := 1; k <= n*10; k++ {
		out := s.Push(v)
		if out < prev {
			t.Fatalf("push %d: output decreased (%g < %g)", k, out, prev)
		}
		if out > v {
			t.Fatalf("push %d: output %g overshot %g", k, out, v)
		}

		// Remaining gap shrinks by (1 - 1/n) per push.
		wantGap := float64(v) * math.Pow(1-1.0/n, float64(k))
		if gap := float64(v - out); math.Abs(gap-wantGap) > 1e-4 {
			t.Fatalf("push %d: gap %g, want %g", k, gap, wantGap)
		}
		prev = out
	}

	if first := NewSlide(n, 0).Push(v); math.Abs(float64(first-v/n)) > 1e-7 {
		t.Errorf("first step = %g, want %g", first, v/n)
	}
}

func TestSlideAsymmetric(t *testing.T) {
	// Immediate rise, slow fall.
	s := NewSlide(0, 100)

	if got := s.Push(1); got != 1 {
		t.Fatalf("rise should be immediate, got %g", got)
	}
	got := s.Push(0)
	if math.Abs(float64(got-0.99)) > 1e-6 {
		t.Errorf("first fall step = %g, want 0.99", got)
	}
	if got := s.Push(2); got != 2 {
		t.Errorf("rise should be immediate, got %g", got)
	}
}

func TestSlideStallGuard(t *testing.T) {
	s := NewSlide(1000, 1000)
	s.Push(0)

	// With a gap this small the step rounds to nothing.
	x := math.Nextafter32(0, 1)
	if got := s.Push(x); got != x {
		t.Errorf("expected stall guard to jump to %g, got %g", x, got)
	}
}

func TestSlideNonFinite(t *testing.T) {
	s := NewSlide(10, 10)
	s.Push(0.5)

	s.Push(float32(math.NaN()))
	got := s.Push(0.25)
	if math.IsNaN(float64(got)) {
		t.Fatal("smoother stayed NaN after a finite input")
	}
	if got != 0.25 {
		t.Errorf("expected recovery to raw input, got %g", got)
	}
}

func TestSlideClear(t *testing.T) {
	s := NewSlide(10, 10)
	s.Push(1)
	s.Clear()
	if s.Output() != 0 {
		t.Errorf("Output() after Clear = %g", s.Output())
	}
	s.Init(0, 0)
	if s.Rise() != 0 || s.Fall() != 0 || s.Output() != 0 {
		t.Error("Init should set step counts and clear")
	}
}

func BenchmarkSlide(b *testing.B) {
	s := NewSlide(882, 44100)
	for i := 0; i < b.N; i++ {
		s.Push(float32(i&0xff) / 255)
	}
}
