package process

import (
	"reflect"
	"testing"
)

type segment struct{ offset, frames int }

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		events   []RampEvent
		segments []segment
		applied  []uint32 // addresses in apply order
	}{
		{
			name:     "No events",
			frames:   64,
			segments: []segment{{0, 64}},
		},
		{
			name:     "Event at start",
			frames:   64,
			events:   []RampEvent{{Offset: 0, Address: 1}},
			segments: []segment{{0, 64}},
			applied:  []uint32{1},
		},
		{
			name:     "Event mid block",
			frames:   64,
			events:   []RampEvent{{Offset: 10, Address: 2}},
			segments: []segment{{0, 10}, {10, 54}},
			applied:  []uint32{2},
		},
		{
			name:   "Shared offset",
			frames: 64,
			events: []RampEvent{
				{Offset: 16, Address: 3},
				{Offset: 16, Address: 4},
				{Offset: 40, Address: 5},
			},
			segments: []segment{{0, 16}, {16, 24}, {40, 24}},
			applied:  []uint32{3, 4, 5},
		},
		{
			name:     "Event past end",
			frames:   32,
			events:   []RampEvent{{Offset: 8, Address: 1}, {Offset: 100, Address: 2}},
			segments: []segment{{0, 8}, {8, 24}},
			applied:  []uint32{1, 2},
		},
		{
			name:     "Empty block still applies",
			frames:   0,
			events:   []RampEvent{{Offset: 0, Address: 6}},
			applied:  []uint32{6},
			segments: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var segs []segment
			var applied []uint32
			Split(tt.frames, tt.events,
				func(e RampEvent) { applied = append(applied, e.Address) },
				func(offset, frames int) { segs = append(segs, segment{offset, frames}) },
			)
			if !reflect.DeepEqual(segs, tt.segments) {
				t.Errorf("segments = %v, want %v", segs, tt.segments)
			}
			if !reflect.DeepEqual(applied, tt.applied) {
				t.Errorf("applied = %v, want %v", applied, tt.applied)
			}
		})
	}
}

func TestSplitAppliesBeforeRender(t *testing.T) {
	var log []string
	Split(20, []RampEvent{{Offset: 5}},
		func(RampEvent) { log = append(log, "apply") },
		func(offset, _ int) {
			if offset == 0 {
				log = append(log, "render0")
			} else {
				log = append(log, "render5")
			}
		},
	)
	want := []string{"render0", "apply", "render5"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestInsertEventOrder(t *testing.T) {
	var events []RampEvent
	for _, e := range []RampEvent{
		{Offset: 30, Address: 0},
		{Offset: 10, Address: 1},
		{Offset: 30, Address: 2},
		{Offset: 0, Address: 3},
		{Offset: 10, Address: 4},
	} {
		events = insertEvent(events, e)
	}

	var got []uint32
	for _, e := range events {
		got = append(got, e.Address)
	}
	want := []uint32{3, 1, 4, 0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSchedule(t *testing.T) {
	s := NewSchedule()
	s.Add(RampEvent{Offset: 1000, Address: 2})
	s.Add(RampEvent{Offset: 100, Address: 1})
	s.Add(RampEvent{Offset: 512, Address: 3})
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	w := s.Window(0, 512)
	if len(w) != 1 || w[0].Address != 1 || w[0].Offset != 100 {
		t.Fatalf("first window = %+v", w)
	}

	w = s.Window(512, 512)
	if len(w) != 2 {
		t.Fatalf("second window has %d events, want 2", len(w))
	}
	if w[0].Offset != 0 || w[0].Address != 3 {
		t.Errorf("second window[0] = %+v", w[0])
	}
	if w[1].Offset != 488 || w[1].Address != 2 {
		t.Errorf("second window[1] = %+v", w[1])
	}

	if w = s.Window(1024, 512); len(w) != 0 {
		t.Errorf("third window = %+v, want empty", w)
	}

	t.Run("Rewind", func(t *testing.T) {
		s.Rewind()
		if w := s.Window(0, 2048); len(w) != 3 {
			t.Errorf("after Rewind window has %d events", len(w))
		}
	})

	t.Run("Late events land at zero", func(t *testing.T) {
		s.Rewind()
		w := s.Window(600, 100)
		if len(w) != 2 {
			t.Fatalf("window has %d events, want 2", len(w))
		}
		for _, e := range w {
			if e.Offset != 0 {
				t.Errorf("late event offset = %d, want 0", e.Offset)
			}
		}
	})
}
