package plugin

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// Info contains plugin metadata
type Info struct {
	ID           string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name         string // Display name
	Version      string // Semantic version (e.g., "1.0.0")
	Vendor       string // Company/developer name
	Category     string // Plugin category (e.g., "Fx", "Instrument")
	Subtype      string // Four-character component subtype
	Manufacturer string // Four-character manufacturer code
}

// UID derives a stable 16-byte identifier from the string ID.
func (i Info) UID() [16]byte {
	var uid [16]byte
	h := fnv.New128a()
	h.Write([]byte(i.ID))
	copy(uid[:], h.Sum(nil))
	return uid
}

// ValidateUID checks that the identifier can produce a usable UID.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID is empty")
	}
	if i.UID() == [16]byte{} {
		return fmt.Errorf("plugin ID %q produced an all-zero UID", i.ID)
	}
	return nil
}

// Validate checks the four-character codes.
func (i Info) Validate() error {
	if err := i.ValidateUID(); err != nil {
		return err
	}
	if len(i.Subtype) != 4 {
		return fmt.Errorf("subtype %q must be four characters", i.Subtype)
	}
	if len(i.Manufacturer) != 4 {
		return fmt.Errorf("manufacturer %q must be four characters", i.Manufacturer)
	}
	return nil
}

// String returns "Name Version (Vendor)".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Name, i.Version, i.Vendor)
}
