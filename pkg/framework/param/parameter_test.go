package param

import (
	"math"
	"testing"
)

func TestParameterBuilders(t *testing.T) {
	t.Run("DecibelParameter", func(t *testing.T) {
		p := DecibelParameter(1, "Attack Amount", -40, 30, 0).Identifier("attackAmount").Build()

		if p.Unit != "dB" {
			t.Errorf("Unit = %q, want dB", p.Unit)
		}
		if got := p.FormatValue(-10); got != "-10.00 dB" {
			t.Errorf("FormatValue(-10) = %q", got)
		}
		v, err := p.ParseValue("45 dB")
		if err != nil {
			t.Fatalf("ParseValue: %v", err)
		}
		if v != 30 {
			t.Errorf("ParseValue should clamp to max, got %f", v)
		}
		if p.Flags&CanRamp == 0 {
			t.Error("parameters should be rampable by default")
		}
	})

	t.Run("TimeParameter", func(t *testing.T) {
		p := TimeParameter(3, "Attack Time", 0, 500, 20).Build()

		tests := []struct {
			input string
			want  float64
		}{
			{"20", 20},
			{"20 ms", 20},
			{"0.25 s", 250},
			{"2s", 500}, // clamped
		}
		for _, tc := range tests {
			got, err := p.ParseValue(tc.input)
			if err != nil {
				t.Errorf("ParseValue(%q): %v", tc.input, err)
				continue
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ParseValue(%q) = %f, want %f", tc.input, got, tc.want)
			}
		}
	})

	t.Run("SecondsParameter", func(t *testing.T) {
		p := SecondsParameter(4, "Release Time", 0, 5, 1).Build()

		if got := p.FormatValue(0.5); got != "500 ms" {
			t.Errorf("FormatValue(0.5) = %q", got)
		}
		if got := p.FormatValue(1.5); got != "1.50 s" {
			t.Errorf("FormatValue(1.5) = %q", got)
		}
		for input, want := range map[string]float64{"1.5": 1.5, "750ms": 0.75, "2 s": 2} {
			got, err := p.ParseValue(input)
			if err != nil || math.Abs(got-want) > 1e-9 {
				t.Errorf("ParseValue(%q) = %f, %v; want %f", input, got, err, want)
			}
		}
	})

	t.Run("DefaultIsClamped", func(t *testing.T) {
		p := DecibelParameter(0, "Input", -40, 15, 20).Build()
		if p.DefaultValue != 15 {
			t.Errorf("DefaultValue = %f, want 15", p.DefaultValue)
		}
	})

	t.Run("ReadOnly", func(t *testing.T) {
		p := New(9, "Meter").ReadOnly().Build()
		if p.Flags&IsReadOnly == 0 || p.Flags&CanAutomate != 0 {
			t.Errorf("unexpected flags %b", p.Flags)
		}
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	err := r.Add(
		DecibelParameter(0, "Input Amount", -40, 15, 0).Identifier("inputAmount").Build(),
		DecibelParameter(1, "Attack Amount", -40, 30, 0).Identifier("attackAmount").Build(),
	)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if p := r.GetByIdentifier("attackAmount"); p == nil || p.ID != 1 {
		t.Errorf("GetByIdentifier(attackAmount) = %+v", p)
	}
	if p := r.GetByIndex(0); p == nil || p.Identifier != "inputAmount" {
		t.Errorf("GetByIndex(0) = %+v", p)
	}
	if r.GetByIndex(5) != nil || r.Get(42) != nil || r.GetByIdentifier("nope") != nil {
		t.Error("lookups of unknown parameters should return nil")
	}

	if err := r.Add(New(1, "Dup").Build()); err == nil {
		t.Error("duplicate ID should be rejected")
	}
	if err := r.Add(New(7, "Dup").Identifier("inputAmount").Build()); err == nil {
		t.Error("duplicate identifier should be rejected")
	}

	all := r.All()
	if len(all) != 2 || all[1].Name != "Attack Amount" {
		t.Errorf("All() returned %d params in wrong order", len(all))
	}
}
