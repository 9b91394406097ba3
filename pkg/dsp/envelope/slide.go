package envelope

// Slide is an asymmetric smoother. Each Push moves the output toward the
// input by 1/rise of the gap when rising and 1/fall when falling. A step
// count of 0 jumps straight to the input.
type Slide struct {
	rise int
	fall int
	last float32
}

// NewSlide creates a smoother with the given rise and fall step counts.
func NewSlide(rise, fall float32) *Slide {
	s := &Slide{}
	s.Init(rise, fall)
	return s
}

// Init sets both step counts and clears the output.
func (s *Slide) Init(rise, fall float32) {
	s.SetRise(rise)
	s.SetFall(fall)
	s.Clear()
}

// Clear resets the output to zero.
func (s *Slide) Clear() {
	s.last = 0
}

// SetRise sets the rising step count. The value is truncated; anything at
// or below one disables smoothing upward.
func (s *Slide) SetRise(steps float32) {
	s.rise = stepCount(steps)
}

// SetFall sets the falling step count, with the same rules as SetRise.
func (s *Slide) SetFall(steps float32) {
	s.fall = stepCount(steps)
}

// Rise returns the effective rising step count.
func (s *Slide) Rise() int { return s.rise }

// Fall returns the effective falling step count.
func (s *Slide) Fall() int { return s.fall }

func stepCount(steps float32) int {
	// NaN and huge values fail the comparison and fall through to 0.
	if !(steps < 1<<30) {
		return 0
	}
	i := int(steps)
	if i > 1 {
		return i
	}
	return 0
}

// Push feeds one sample and returns the smoothed output.
func (s *Slide) Push(x float32) float32 {
	var out float32

	if x >= s.last {
		if s.rise > 1 {
			out = s.last + (x-s.last)/float32(s.rise)
		} else {
			out = x
		}
	} else {
		if s.fall > 1 {
			out = s.last + (x-s.last)/float32(s.fall)
		} else {
			out = x
		}
	}

	// Rounding can leave a tiny gap that never closes.
	if out == s.last && out != x {
		out = x
	}
	if !isFinite32(out) {
		out = x
	}

	s.last = out
	return out
}

// Output returns the value computed by the last Push.
func (s *Slide) Output() float32 {
	return s.last
}
