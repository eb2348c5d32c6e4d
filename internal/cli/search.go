package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/browserhist/internal/history"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	a, err := newApp(c.globals, !c.NoFavicons)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.service()
	if err != nil {
		return err
	}

	return c.executeWithService(svc, resolveLimit(c.Limit, a.cfg), args)
}

// executeWithService runs the search against a provided service (for testing).
func (c *SearchCommand) executeWithService(svc *history.Service, limit int, args []string) error {
	query := strings.Join(args, " ")

	ctx := context.Background()
	results, err := svc.Query(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(query, string(svc.Browser()), results)
	}
	return c.printHuman(query, string(svc.Browser()), results)
}

func (c *SearchCommand) printHuman(query, browserName string, results []history.Result) error {
	if len(results) == 0 {
		if query != "" {
			fmt.Printf("No results found for %q in %s\n", query, browserName)
		} else {
			fmt.Printf("No results found in %s\n", browserName)
		}
		return nil
	}

	// A lone record without a URL is the "not found" placeholder.
	if len(results) == 1 && results[0].URL == "" {
		fmt.Println(results[0].Title)
		fmt.Printf("   %s\n", results[0].Subtitle)
		return nil
	}

	resultWord := "results"
	if len(results) == 1 {
		resultWord = "result"
	}
	if query != "" {
		fmt.Printf("Found %d %s for %q in %s\n\n", len(results), resultWord, query, browserName)
	} else {
		fmt.Printf("Found %d %s in %s\n\n", len(results), resultWord, browserName)
	}

	for i, r := range results {
		fmt.Println(r.Title)
		fmt.Printf("   %s\n", r.Subtitle)
		if r.IconPath != "" {
			fmt.Printf("   icon: %s\n", r.IconPath)
		}

		if i < len(results)-1 {
			fmt.Println()
		}
	}

	return nil
}

type jsonSearchOutput struct {
	Count   int              `json:"count"`
	Query   string           `json:"query"`
	Browser string           `json:"browser"`
	Results []history.Result `json:"results"`
}

func (c *SearchCommand) printJSON(query, browserName string, results []history.Result) error {
	out := jsonSearchOutput{
		Count:   len(results),
		Query:   query,
		Browser: browserName,
		Results: results,
	}
	if out.Results == nil {
		out.Results = []history.Result{}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
