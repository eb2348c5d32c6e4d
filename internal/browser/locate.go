package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Profile is a resolved history database location.
type Profile struct {
	DatabasePath string
	Family       Family
}

// ProfileLocator resolves where a browser keeps its history database.
type ProfileLocator interface {
	Locate(b Browser) (Profile, error)
}

// geckoProfilePatterns are tried in priority order against the entries of a
// Gecko profile root.
var geckoProfilePatterns = []string{
	"*.default-release",  // Firefox release
	"*Default (release)", // Zen
	"*.default",          // legacy Firefox
	"*Default Profile",
}

// geckoDatabaseFile is the history database inside a Gecko profile.
const geckoDatabaseFile = "places.sqlite"

// Locator resolves history paths from OS conventions. The zero value is not
// useful; build one with NewLocator or fill every field for a given platform.
type Locator struct {
	GOOS           string
	Home           string
	LocalAppData   string // Windows %LOCALAPPDATA%
	RoamingAppData string // Windows %APPDATA%
}

// NewLocator returns a Locator for the running platform.
func NewLocator() *Locator {
	home, _ := os.UserHomeDir()
	l := &Locator{
		GOOS:           runtime.GOOS,
		Home:           home,
		LocalAppData:   os.Getenv("LOCALAPPDATA"),
		RoamingAppData: os.Getenv("APPDATA"),
	}
	if l.LocalAppData == "" {
		l.LocalAppData = filepath.Join(home, "AppData", "Local")
	}
	if l.RoamingAppData == "" {
		l.RoamingAppData = filepath.Join(home, "AppData", "Roaming")
	}
	return l
}

// Locate returns the database path for b. Chromium browsers resolve to a
// fixed path whose existence is checked later by the snapshot reader; Gecko
// browsers search their profile root.
func (l *Locator) Locate(b Browser) (Profile, error) {
	family := b.Family()
	if family == FamilyUnknown {
		return Profile{}, fmt.Errorf("locate %q: %w", b, ErrHistoryUnavailable)
	}

	base, ok := l.dataPath(b)
	if !ok {
		return Profile{}, fmt.Errorf("%s is not supported on %s: %w", b, l.GOOS, ErrHistoryUnavailable)
	}

	if family == FamilyChromium {
		return Profile{DatabasePath: base, Family: family}, nil
	}

	dir, err := FindProfile(base)
	if err != nil {
		return Profile{}, err
	}
	return Profile{DatabasePath: filepath.Join(dir, geckoDatabaseFile), Family: family}, nil
}

// dataPath returns the Chromium History file or the Gecko profile root.
func (l *Locator) dataPath(b Browser) (string, bool) {
	switch l.GOOS {
	case "windows":
		local, roaming := l.LocalAppData, l.RoamingAppData
		switch b {
		case Chrome:
			return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "History"), true
		case Edge:
			return filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "History"), true
		case Brave:
			return filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data", "Default", "History"), true
		case Opera:
			return filepath.Join(roaming, "Opera Software", "Opera Stable", "Default", "History"), true
		case Vivaldi:
			return filepath.Join(local, "Vivaldi", "User Data", "Default", "History"), true
		case Arc:
			return filepath.Join(local, "Packages", "TheBrowserCompany.Arc_ttt1ap7aakyb4", "LocalCache", "Local", "Arc", "User Data", "Default", "History"), true
		case Firefox:
			return filepath.Join(roaming, "Mozilla", "Firefox", "Profiles"), true
		case Zen:
			return filepath.Join(roaming, "zen", "Profiles"), true
		}
	case "darwin":
		support := filepath.Join(l.Home, "Library", "Application Support")
		switch b {
		case Chrome:
			return filepath.Join(support, "Google", "Chrome", "Default", "History"), true
		case Edge:
			return filepath.Join(support, "Microsoft Edge", "Default", "History"), true
		case Brave:
			return filepath.Join(support, "BraveSoftware", "Brave-Browser", "Default", "History"), true
		case Opera:
			return filepath.Join(support, "com.operasoftware.Opera", "Default", "History"), true
		case Vivaldi:
			return filepath.Join(support, "Vivaldi", "Default", "History"), true
		case Arc:
			return filepath.Join(support, "Arc", "User Data", "Default", "History"), true
		case Firefox:
			return filepath.Join(support, "Firefox", "Profiles"), true
		case Zen:
			return filepath.Join(support, "zen", "Profiles"), true
		}
	default:
		config := filepath.Join(l.Home, ".config")
		switch b {
		case Chrome:
			return filepath.Join(config, "google-chrome", "Default", "History"), true
		case Edge:
			return filepath.Join(config, "microsoft-edge", "Default", "History"), true
		case Brave:
			return filepath.Join(config, "BraveSoftware", "Brave-Browser", "Default", "History"), true
		case Opera:
			return filepath.Join(config, "opera", "Default", "History"), true
		case Vivaldi:
			return filepath.Join(config, "vivaldi", "Default", "History"), true
		case Firefox:
			return filepath.Join(l.Home, ".mozilla", "firefox"), true
		case Zen:
			return filepath.Join(l.Home, ".zen"), true
		}
	}
	return "", false
}

// FindProfile returns the first directory under root matching the Gecko
// profile patterns, trying each pattern in order. Nothing is merged across
// profiles.
func FindProfile(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", &ProfileNotFoundError{Root: root}
	}

	for _, pattern := range geckoProfilePatterns {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				return filepath.Join(root, e.Name()), nil
			}
		}
	}

	return "", &ProfileNotFoundError{Root: root}
}

// FixedLocator always resolves to the same database. It backs the
// history.database_path override.
type FixedLocator struct {
	Path string
}

// Locate implements ProfileLocator.
func (f FixedLocator) Locate(b Browser) (Profile, error) {
	return Profile{DatabasePath: f.Path, Family: b.Family()}, nil
}
