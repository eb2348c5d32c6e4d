package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/browserhist/internal/favicon"
)

// faviconCache returns the injected cache or builds one from config.
func faviconCache(globals *GlobalFlags, injected *favicon.Cache) (*favicon.Cache, func(), error) {
	if injected != nil {
		return injected, func() {}, nil
	}

	a, err := newApp(globals, true)
	if err != nil {
		return nil, nil, err
	}
	if a.favicons == nil {
		a.close()
		return nil, nil, fmt.Errorf("favicon cache is disabled or unavailable")
	}
	return a.favicons, a.close, nil
}

// Execute implements the go-flags Commander interface for FaviconCommand.
func (c *FaviconCommand) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("favicon requires exactly one URL")
	}

	cache, done, err := faviconCache(c.globals, c.cache)
	if err != nil {
		return err
	}
	defer done()

	path, ok := cache.Resolve(context.Background(), args[0])
	if !ok {
		return fmt.Errorf("no favicon available for %s", args[0])
	}

	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"url":  args[0],
			"path": path,
		})
	}
	fmt.Println(path)
	return nil
}

// Execute implements the go-flags Commander interface for ClearFaviconsCommand.
func (c *ClearFaviconsCommand) Execute(args []string) error {
	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will delete ALL cached favicons.")
		fmt.Println("  They will be downloaded again on the next search.")
		fmt.Println()
		fmt.Print(`Type "CLEAR" to confirm: `)

		var in io.Reader = os.Stdin
		if c.stdin != nil {
			in = c.stdin
		}
		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "CLEAR" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	cache, done, err := faviconCache(c.globals, c.cache)
	if err != nil {
		return err
	}
	defer done()

	removed, err := cache.Clear()

	// Output
	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"cleared": err == nil,
			"removed": removed,
		}
		if err != nil {
			out["error"] = err.Error()
		}
		enc := json.NewEncoder(os.Stdout)
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
		return err
	}

	fmt.Printf("Removed %d cached favicons from %s.\n", removed, cache.Dir())
	if err != nil {
		return fmt.Errorf("some favicons could not be removed: %w", err)
	}
	return nil
}
