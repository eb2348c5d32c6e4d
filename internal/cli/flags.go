package cli

import (
	"io"

	"github.com/runnerr0/browserhist/internal/favicon"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	Browser string `long:"browser" description:"Browser to read (overrides config): chrome, firefox, edge, brave, opera, vivaldi, arc, zen"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// SearchCommand — search history by title or URL substring.
type SearchCommand struct {
	Limit      int  `long:"limit" description:"How many recent entries to scan (0 = config default, max 10000)" default:"0"`
	NoFavicons bool `long:"no-favicons" description:"Skip favicon lookups"`

	globals *GlobalFlags
	version string
}

// RecentCommand — list the most recent history entries.
type RecentCommand struct {
	Limit int `long:"limit" description:"Maximum entries" default:"20"`

	globals *GlobalFlags
	version string
}

// BrowsersCommand — show supported browsers and where their history lives.
type BrowsersCommand struct {
	globals *GlobalFlags
	version string
}

// FaviconCommand — resolve the cached favicon for a URL.
type FaviconCommand struct {
	globals *GlobalFlags
	version string
	cache   *favicon.Cache // injectable for testing; nil means build from config
}

// ClearFaviconsCommand — delete every cached favicon with safety confirmation.
type ClearFaviconsCommand struct {
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	cache   *favicon.Cache // injectable for testing
	stdin   io.Reader      // injectable for testing; nil means os.Stdin
}

// OpenCommand — open a URL in the system default browser.
type OpenCommand struct {
	globals *GlobalFlags
	version string
	launch  func(url string) error // injectable for testing; nil means openURL
}
