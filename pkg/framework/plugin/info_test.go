package plugin

import (
	"testing"
)

func TestUIDGeneration(t *testing.T) {
	ids := []string{
		"com.justyntemme.intensifier",
		"com.mycompany.newplugin",
		"com.mycompany.anotherplugin",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			info := &Info{ID: id}

			if info.UID() != info.UID() {
				t.Errorf("UID generation is not deterministic for %s", id)
			}
			if err := info.ValidateUID(); err != nil {
				t.Errorf("UID validation failed for %s: %v", id, err)
			}
		})
	}
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()
		if existingID, exists := uids[uid]; exists {
			t.Errorf("UID collision between %s and %s", pluginID, existingID)
		}
		uids[uid] = pluginID
	}
}

func TestInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{
			name:    "Valid",
			info:    Info{ID: "com.example.plugin", Subtype: "ints", Manufacturer: "Demo"},
			wantErr: false,
		},
		{
			name:    "Empty plugin ID",
			info:    Info{Subtype: "ints", Manufacturer: "Demo"},
			wantErr: true,
		},
		{
			name:    "Short subtype",
			info:    Info{ID: "com.example.plugin", Subtype: "in", Manufacturer: "Demo"},
			wantErr: true,
		},
		{
			name:    "Long manufacturer",
			info:    Info{ID: "com.example.plugin", Subtype: "ints", Manufacturer: "Demos"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Name: "Intensifier", Version: "1.2.0", Vendor: "Acme"}
	if got := info.String(); got != "Intensifier 1.2.0 (Acme)" {
		t.Errorf("String() = %q", got)
	}
}
