package process

// RampEvent asks the kernel to ramp a parameter to Value over Duration
// frames, starting at Offset.
type RampEvent struct {
	Offset   int
	Address  uint32
	Value    float32
	Duration uint32
}

// insertEvent inserts e after every event with an offset <= e.Offset.
func insertEvent(events []RampEvent, e RampEvent) []RampEvent {
	i := len(events)
	for i > 0 && events[i-1].Offset > e.Offset {
		i--
	}
	events = append(events, RampEvent{})
	copy(events[i+1:], events[i:])
	events[i] = e
	return events
}

// Split walks a block of frames in segments bounded by event offsets. For
// every offset, the events at it are passed to apply before the segment
// starting there is passed to render. Events are expected in offset order;
// offsets beyond the block are clamped to its end and still applied.
// Split itself never allocates.
func Split(frames int, events []RampEvent, apply func(RampEvent), render func(offset, frames int)) {
	pos := 0
	i := 0
	for pos < frames {
		for i < len(events) && events[i].Offset <= pos {
			apply(events[i])
			i++
		}
		end := frames
		if i < len(events) && events[i].Offset < end {
			end = events[i].Offset
		}
		render(pos, end-pos)
		pos = end
	}
	for ; i < len(events); i++ {
		apply(events[i])
	}
}

// Schedule holds absolutely-timed events for a whole render and hands them
// out block by block.
type Schedule struct {
	events []RampEvent // Offset is an absolute frame
	next   int
	window []RampEvent
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Add inserts an event at absolute frame e.Offset.
func (s *Schedule) Add(e RampEvent) {
	s.events = insertEvent(s.events, e)
}

// Len returns the number of scheduled events.
func (s *Schedule) Len() int {
	return len(s.events)
}

// Window returns the not-yet-consumed events that fall in
// [start, start+frames), with offsets relative to start, and consumes them.
// Events before start that were never consumed are delivered at offset 0.
// The returned slice is reused by the next call.
func (s *Schedule) Window(start, frames int) []RampEvent {
	s.window = s.window[:0]
	end := start + frames
	for s.next < len(s.events) && s.events[s.next].Offset < end {
		e := s.events[s.next]
		e.Offset -= start
		if e.Offset < 0 {
			e.Offset = 0
		}
		s.window = append(s.window, e)
		s.next++
	}
	return s.window
}

// Rewind makes every event pending again.
func (s *Schedule) Rewind() {
	s.next = 0
}
