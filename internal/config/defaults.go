package config

import (
	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/favicon"
)

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Browser: string(browser.Chrome),
		History: HistoryConfig{
			Limit:          browser.MaxLimit,
			DatabasePath:   "",
			ScratchDir:     "",
			ExcludeDomains: []string{},
			HideSensitive:  false,
		},
		Favicons: FaviconsConfig{
			Enabled:   true,
			CacheDir:  "~/.cache/browserhist/favicons",
			Endpoint:  favicon.DefaultEndpoint,
			Size:      favicon.DefaultSize,
			Timeout:   favicon.DefaultTimeout,
			UserAgent: favicon.DefaultUserAgent,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			File:   "",
			Pretty: false,
		},
	}
}
