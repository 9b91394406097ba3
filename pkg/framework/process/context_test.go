package process

import "testing"

func TestContextResize(t *testing.T) {
	c := NewContext(2, 256, 48000)
	if c.NumChannels() != 2 || c.NumSamples() != 256 || c.MaxBlockSize() != 256 {
		t.Fatalf("new context: %d channels, %d samples, max %d",
			c.NumChannels(), c.NumSamples(), c.MaxBlockSize())
	}

	tests := []struct {
		request, want int
	}{
		{64, 64},
		{256, 256},
		{1000, 256},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := c.Resize(tt.request); got != tt.want {
			t.Errorf("Resize(%d) = %d, want %d", tt.request, got, tt.want)
		}
		if c.NumSamples() != tt.want {
			t.Errorf("after Resize(%d) NumSamples() = %d", tt.request, c.NumSamples())
		}
	}
}

func TestContextPassThrough(t *testing.T) {
	c := NewContext(2, 8, 44100)
	for ch := range c.Input {
		for i := range c.Input[ch] {
			c.Input[ch][i] = float32(ch*10 + i)
		}
	}

	c.PassThrough()
	for ch := range c.Output {
		for i, x := range c.Output[ch] {
			if x != c.Input[ch][i] {
				t.Fatalf("Output[%d][%d] = %g, want %g", ch, i, x, c.Input[ch][i])
			}
		}
	}

	c.Clear()
	if c.Output[1][3] != 0 {
		t.Error("Clear left output data")
	}
	if c.Input[1][3] != 13 {
		t.Errorf("Clear touched input: %g", c.Input[1][3])
	}
}

func TestContextEvents(t *testing.T) {
	c := NewContext(1, 64, 44100)
	if c.HasEvents() {
		t.Fatal("new context has events")
	}
	c.AddEvent(RampEvent{Offset: 20, Address: 1})
	c.AddEvent(RampEvent{Offset: 5, Address: 2})
	if !c.HasEvents() || len(c.Events()) != 2 {
		t.Fatalf("Events() = %+v", c.Events())
	}
	if c.Events()[0].Address != 2 {
		t.Errorf("events not ordered by offset: %+v", c.Events())
	}
	c.ClearEvents()
	if c.HasEvents() {
		t.Error("ClearEvents left events")
	}
}

func TestContextInterleaved(t *testing.T) {
	c := NewContext(2, 4, 44100)
	src := []float32{1, -1, 2, -2, 3, -3, 99}

	if n := c.LoadInterleaved(src); n != 3 {
		t.Fatalf("LoadInterleaved() = %d frames, want 3", n)
	}
	if c.Input[0][2] != 3 || c.Input[1][2] != -3 {
		t.Errorf("deinterleaved frame 2 = (%g, %g)", c.Input[0][2], c.Input[1][2])
	}

	for ch := range c.Input {
		for i, x := range c.Input[ch] {
			c.Output[ch][i] = 2 * x
		}
	}

	dst := make([]float32, 8)
	if n := c.StoreInterleaved(dst); n != 6 {
		t.Fatalf("StoreInterleaved() = %d samples, want 6", n)
	}
	want := []float32{2, -2, 4, -4, 6, -6, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %g, want %g", i, dst[i], want[i])
		}
	}

	t.Run("Capped at block size", func(t *testing.T) {
		long := make([]float32, 20)
		if n := c.LoadInterleaved(long); n != 4 {
			t.Errorf("LoadInterleaved() = %d frames, want 4", n)
		}
	})
}
