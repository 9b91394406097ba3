package preset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/justyntemme/intensifier/pkg/intensifier"
)

func TestFactorySubtle(t *testing.T) {
	p, err := Lookup(DefaultName, nil)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", DefaultName, err)
	}
	v, err := p.Values()
	if err != nil {
		t.Fatal(err)
	}
	want := intensifier.Values{0, -10, 5, 20, 1, 0}
	if v != want {
		t.Errorf("Subtle = %v, want %v", v, want)
	}

	// Factory returns copies.
	Factory()[0].Params["attackAmount"] = 30
	p, _ = Lookup("subtle", nil)
	if p.Params["attackAmount"] != -10 {
		t.Error("mutating Factory() changed the built-in preset")
	}
}

func TestPresetWith(t *testing.T) {
	base, _ := Lookup(DefaultName, nil)
	p := base.With(map[string]float32{"attackAmount": 6, "outputAmount": -3})

	v, err := p.Values()
	if err != nil {
		t.Fatal(err)
	}
	if want := (intensifier.Values{0, 6, 5, 20, 1, -3}); v != want {
		t.Errorf("Values() = %v, want %v", v, want)
	}
	if base.Params["attackAmount"] != -10 {
		t.Error("With modified the original preset")
	}
	if got := (Preset{Name: "Empty"}).With(map[string]float32{"releaseTime": 2}); got.Params["releaseTime"] != 2 {
		t.Errorf("With on empty preset = %v", got.Params)
	}
}

func TestPresetValues(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]float32
		want    intensifier.Values
		wantErr error
	}{
		{
			name:   "Missing keep defaults",
			params: map[string]float32{"attackAmount": 12},
			want:   intensifier.Values{0, 12, 0, 20, 1, 0},
		},
		{
			name:   "Clamped",
			params: map[string]float32{"inputAmount": 100, "releaseTime": -3},
			want:   intensifier.Values{15, 0, 0, 20, 0, 0},
		},
		{
			name:    "Unknown identifier",
			params:  map[string]float32{"mix": 0.5},
			wantErr: ErrUnknownParameter,
		},
		{
			name:    "NaN",
			params:  map[string]float32{"attackAmount": float32(math.NaN())},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "Infinite",
			params:  map[string]float32{"releaseTime": float32(math.Inf(1))},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preset{Name: tt.name, Params: tt.params}.Values()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	f := &File{}
	f.Put(FromValues("Punch", intensifier.Values{0, 12, -6, 10, 0.5, -3}))
	f.Put(Preset{Name: "Soft", Description: "gentle", Params: map[string]float32{"attackAmount": -20}})
	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Presets) != 2 {
		t.Fatalf("loaded %d presets, want 2", len(loaded.Presets))
	}

	p, err := Lookup("punch", loaded)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := p.Values()
	if want := (intensifier.Values{0, 12, -6, 10, 0.5, -3}); v != want {
		t.Errorf("Punch = %v, want %v", v, want)
	}
	if s, _ := Lookup("Soft", loaded); s.Description != "gentle" {
		t.Errorf("Soft description = %q", s.Description)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"Bad yaml", "presets: [\n"},
		{"Missing name", "presets:\n  - params:\n      attackAmount: 3\n"},
		{"Duplicate", "presets:\n  - name: A\n  - name: a\n"},
		{"Unknown parameter", "presets:\n  - name: A\n    params:\n      drive: 3\n"},
		{"NaN value", "presets:\n  - name: A\n    params:\n      attackAmount: .nan\n"},
		{"Infinite value", "presets:\n  - name: A\n    params:\n      inputAmount: -.inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLookup(t *testing.T) {
	f := &File{Presets: []Preset{
		{Name: "Subtle", Params: map[string]float32{"attackAmount": 3}},
		{Name: "Crunchy"},
	}}

	p, err := Lookup("SUBTLE", f)
	if err != nil {
		t.Fatal(err)
	}
	if p.Params["attackAmount"] != 3 {
		t.Error("file preset did not shadow factory preset")
	}

	if _, err := Lookup("Wide", f); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("error = %v, want ErrUnknownPreset", err)
	}

	names := Names(f)
	if len(names) != 2 || names[0] != "Crunchy" || names[1] != "Subtle" {
		t.Errorf("Names() = %v", names)
	}
	if names := Names(nil); len(names) != 1 || names[0] != DefaultName {
		t.Errorf("Names(nil) = %v", names)
	}
}

func TestApply(t *testing.T) {
	k := intensifier.New()
	p, _ := Lookup(DefaultName, nil)
	if err := Apply(k, p); err != nil {
		t.Fatal(err)
	}
	if got := k.GetParameter(intensifier.ParamAttackAmount); got != -10 {
		t.Errorf("attackAmount = %g, want -10", got)
	}
	if err := Apply(k, Preset{Name: "bad", Params: map[string]float32{"x": 1}}); err == nil {
		t.Error("Apply accepted unknown parameter")
	}
}
