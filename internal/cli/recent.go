package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/history"
)

// Execute implements the go-flags Commander interface for RecentCommand.
func (c *RecentCommand) Execute(args []string) error {
	a, err := newApp(c.globals, false)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.service()
	if err != nil {
		return err
	}

	return c.executeWithService(svc)
}

// executeWithService lists recent entries from a provided service (for testing).
func (c *RecentCommand) executeWithService(svc *history.Service) error {
	ctx := context.Background()
	entries, err := svc.History(ctx, browser.ClampLimit(c.Limit))
	if err != nil {
		if history.IsNotFound(err) {
			fmt.Printf("History not found for %s: %v\n", svc.Browser(), err)
			return nil
		}
		return fmt.Errorf("read history: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(string(svc.Browser()), entries)
	}

	if len(entries) == 0 {
		fmt.Printf("No history in %s\n", svc.Browser())
		return nil
	}

	for i, e := range entries {
		fmt.Printf("%d. %s\n", i, e.Title)
		fmt.Printf("   %s\n", e.URL)
		fmt.Printf("   %s · %s\n", e.Time().Format("2006-01-02 15:04"), svc.Browser())

		if i < len(entries)-1 {
			fmt.Println()
		}
	}
	return nil
}

type jsonEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Visited   string `json:"visited"`
	Timestamp int64  `json:"timestamp"`
	Family    string `json:"family"`
}

type jsonRecentOutput struct {
	Count   int         `json:"count"`
	Browser string      `json:"browser"`
	Entries []jsonEntry `json:"entries"`
}

func (c *RecentCommand) printJSON(browserName string, entries []browser.Entry) error {
	out := jsonRecentOutput{
		Count:   len(entries),
		Browser: browserName,
		Entries: make([]jsonEntry, len(entries)),
	}

	for i, e := range entries {
		out.Entries[i] = jsonEntry{
			URL:       e.URL,
			Title:     e.Title,
			Visited:   e.Time().Format(time.RFC3339),
			Timestamp: e.Visited,
			Family:    e.Family.String(),
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
