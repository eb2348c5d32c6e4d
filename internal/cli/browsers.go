package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/favicon"
)

// browserStatusJSON is the JSON output structure for one browser.
type browserStatusJSON struct {
	Name         string `json:"name"`
	Family       string `json:"family"`
	Configured   bool   `json:"configured"`
	DatabasePath string `json:"database_path,omitempty"`
	Exists       bool   `json:"exists"`
	SizeBytes    int64  `json:"size_bytes"`
	Error        string `json:"error,omitempty"`
}

type statusJSON struct {
	Version       string              `json:"version"`
	Browsers      []browserStatusJSON `json:"browsers"`
	FaviconDir    string              `json:"favicon_dir,omitempty"`
	FaviconCount  int                 `json:"favicon_count"`
	FaviconsBytes int64               `json:"favicon_bytes"`
}

// Execute implements the go-flags Commander interface for BrowsersCommand.
func (c *BrowsersCommand) Execute(args []string) error {
	a, err := newApp(c.globals, true)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithLocator(a.locator, a.browser, a.favicons)
}

// executeWithLocator reports against a provided locator (for testing).
func (c *BrowsersCommand) executeWithLocator(locator browser.ProfileLocator, configured browser.Browser, cache *favicon.Cache) error {
	out := statusJSON{Version: c.version}

	for _, b := range browser.All() {
		st := browserStatusJSON{
			Name:       string(b),
			Family:     b.Family().String(),
			Configured: b == configured,
		}
		profile, err := locator.Locate(b)
		if err != nil {
			st.Error = err.Error()
		} else {
			st.DatabasePath = profile.DatabasePath
			if info, err := os.Stat(profile.DatabasePath); err == nil {
				st.Exists = true
				st.SizeBytes = info.Size()
			}
		}
		out.Browsers = append(out.Browsers, st)
	}

	if cache != nil {
		out.FaviconDir = cache.Dir()
		n, total, err := cache.Size()
		if err == nil {
			out.FaviconCount = n
			out.FaviconsBytes = total
		}
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return c.printHuman(out)
}

func (c *BrowsersCommand) printHuman(out statusJSON) error {
	fmt.Println("Browser History Status")
	fmt.Println("======================")
	fmt.Printf("Version:       %s\n", out.Version)
	fmt.Println()

	for _, b := range out.Browsers {
		marker := " "
		if b.Configured {
			marker = "*"
		}
		fmt.Printf("%s %-8s %-9s ", marker, b.Name, b.Family)
		switch {
		case b.Error != "":
			fmt.Printf("not found (%s)\n", b.Error)
		case b.Exists:
			fmt.Printf("%s (%s)\n", b.DatabasePath, formatBytes(b.SizeBytes))
		default:
			fmt.Printf("%s (missing)\n", b.DatabasePath)
		}
	}

	fmt.Println()
	if out.FaviconDir != "" {
		fmt.Printf("Favicons:      %d cached in %s (%s)\n", out.FaviconCount, out.FaviconDir, formatBytes(out.FaviconsBytes))
	} else {
		fmt.Println("Favicons:      disabled")
	}
	return nil
}
