package browser

import (
	"fmt"
	"strings"
)

// Family identifies the on-disk history schema a browser uses.
type Family int

const (
	// FamilyUnknown is never produced by the registry; it only exists so a
	// zero-value Entry still decodes to something.
	FamilyUnknown Family = iota
	FamilyChromium
	FamilyGecko
)

func (f Family) String() string {
	switch f {
	case FamilyChromium:
		return "chromium"
	case FamilyGecko:
		return "gecko"
	default:
		return "unknown"
	}
}

// Browser is a supported browser identifier, e.g. "chrome" or "zen".
type Browser string

const (
	Chrome  Browser = "chrome"
	Firefox Browser = "firefox"
	Edge    Browser = "edge"
	Brave   Browser = "brave"
	Opera   Browser = "opera"
	Vivaldi Browser = "vivaldi"
	Arc     Browser = "arc"
	Zen     Browser = "zen"
)

// supported lists every browser in display order.
var supported = []Browser{Chrome, Firefox, Edge, Brave, Opera, Vivaldi, Arc, Zen}

// All returns the supported browsers in a stable order.
func All() []Browser {
	out := make([]Browser, len(supported))
	copy(out, supported)
	return out
}

// Family returns the schema family of b.
func (b Browser) Family() Family {
	switch b {
	case Chrome, Edge, Brave, Opera, Vivaldi, Arc:
		return FamilyChromium
	case Firefox, Zen:
		return FamilyGecko
	default:
		return FamilyUnknown
	}
}

// Parse resolves a configured browser name. Matching ignores case and
// surrounding whitespace.
func Parse(name string) (Browser, error) {
	b := Browser(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range supported {
		if s == b {
			return b, nil
		}
	}

	names := make([]string, len(supported))
	for i, s := range supported {
		names[i] = string(s)
	}
	return "", fmt.Errorf("invalid browser name %q (valid options: %s)", name, strings.Join(names, ", "))
}
