package cli

import (
	"fmt"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/config"
	"github.com/runnerr0/browserhist/internal/favicon"
	"github.com/runnerr0/browserhist/internal/history"
	"github.com/runnerr0/browserhist/internal/logging"
)

// app is the wired set of components a command runs against.
type app struct {
	cfg      *config.Config
	log      logging.Logger
	browser  browser.Browser
	locator  browser.ProfileLocator
	reader   *browser.SnapshotReader
	favicons *favicon.Cache // nil when disabled or unavailable
}

// loadConfig resolves configuration.
// Priority: --config file > default config path (created if missing) > defaults.
// Flag overrides are applied last and the result is validated.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if globals.Config != "" {
		cfg, err = config.Load(globals.Config)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.LoadOrCreate()
		if err != nil {
			cfg = config.DefaultConfig()
		}
	}

	if globals.Browser != "" {
		cfg.Browser = globals.Browser
	}
	if globals.Verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and builds the components. An unknown browser
// fails here, before any query runs.
func newApp(globals *GlobalFlags, withFavicons bool) (*app, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	logFile, err := config.ExpandPath(cfg.Logging.File)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Pretty, logFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	b, err := browser.Parse(cfg.Browser)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, browser: b}

	if cfg.History.DatabasePath != "" {
		path, err := config.ExpandPath(cfg.History.DatabasePath)
		if err != nil {
			return nil, err
		}
		a.locator = browser.FixedLocator{Path: path}
	} else {
		a.locator = browser.NewLocator()
	}

	scratch, err := config.ExpandPath(cfg.History.ScratchDir)
	if err != nil {
		return nil, err
	}
	a.reader = &browser.SnapshotReader{TempDir: scratch}

	if withFavicons && cfg.Favicons.Enabled {
		a.favicons = openFavicons(cfg, log)
	}

	return a, nil
}

// openFavicons builds the favicon cache. Failure only disables icons.
func openFavicons(cfg *config.Config, log logging.Logger) *favicon.Cache {
	dir, err := config.ExpandPath(cfg.Favicons.CacheDir)
	if err != nil {
		log.Warn("favicons disabled", logging.Error(err))
		return nil
	}

	cache, err := favicon.New(favicon.Options{
		Dir:       dir,
		Endpoint:  cfg.Favicons.Endpoint,
		Size:      cfg.Favicons.Size,
		Timeout:   cfg.Favicons.Timeout,
		UserAgent: cfg.Favicons.UserAgent,
	}, log)
	if err != nil {
		log.Warn("favicons disabled", logging.Error(err))
		return nil
	}
	return cache
}

// service builds the history service for the configured browser.
func (a *app) service() (*history.Service, error) {
	adapter, err := browser.NewAdapter(a.browser, a.locator, a.reader)
	if err != nil {
		return nil, err
	}

	opts := []history.Option{history.WithExcludedDomains(a.cfg.ExcludedDomains())}
	if a.favicons != nil {
		opts = append(opts, history.WithIcons(a.favicons))
	}
	return history.NewService(adapter, a.log, opts...), nil
}

// close flushes the logger.
func (a *app) close() {
	_ = a.log.Sync()
}

// resolveLimit picks the flag value when set, otherwise the configured one.
func resolveLimit(flag int, cfg *config.Config) int {
	if flag > 0 {
		return browser.ClampLimit(flag)
	}
	return browser.ClampLimit(cfg.History.Limit)
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
