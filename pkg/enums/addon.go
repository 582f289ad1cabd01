package enums

import "fmt"

// AddonKind enumerates the optional per-passenger services a location may
// offer.
type AddonKind string

const (
	AddonPickup       AddonKind = "pickup"
	AddonAerialCamera AddonKind = "aerial_camera"
	AddonCamera360    AddonKind = "camera_360"
)

var validAddonKinds = []AddonKind{
	AddonPickup,
	AddonAerialCamera,
	AddonCamera360,
}

// AllAddonKinds returns the closed set of add-on kinds in stable order.
func AllAddonKinds() []AddonKind {
	out := make([]AddonKind, len(validAddonKinds))
	copy(out, validAddonKinds)
	return out
}

// String implements fmt.Stringer.
func (a AddonKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AddonKind.
func (a AddonKind) IsValid() bool {
	for _, candidate := range validAddonKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddonKind converts the raw string to an AddonKind.
func ParseAddonKind(value string) (AddonKind, error) {
	for _, candidate := range validAddonKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid addon kind %q", value)
}
