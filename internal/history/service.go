// Package history searches a browser's visit history and turns matches into
// display records.
package history

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/logging"
)

const (
	// DefaultIcon names the icon shown when no favicon is cached.
	DefaultIcon = "history"
	// DefaultGlyph is the Segoe MDL2 "History" glyph.
	DefaultGlyph = "\uE81C"

	notFoundTitle    = "History not found!"
	notFoundSubtitle = "Check your logs for more information."
)

// IconResolver maps a URL to a local image path.
type IconResolver interface {
	Resolve(ctx context.Context, rawURL string) (string, bool)
}

// Result is one display record handed to the host.
type Result struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	IconPath string `json:"icon_path,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Glyph    string `json:"glyph,omitempty"`
	URL      string `json:"url,omitempty"` // action payload for "open in browser"
}

// IsNotFound reports whether err means the browser's history could not be
// located or read. These are terminal for a query and shown as "not found".
func IsNotFound(err error) bool {
	return errors.Is(err, browser.ErrProfileNotFound) || errors.Is(err, browser.ErrHistoryUnavailable)
}

// Service is the entry point for history queries against one browser.
type Service struct {
	adapter  browser.Adapter
	icons    IconResolver
	excluded []string
	log      logging.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithIcons enables favicon lookups for Query results.
func WithIcons(r IconResolver) Option {
	return func(s *Service) { s.icons = r }
}

// WithExcludedDomains hides entries whose host is, or is a subdomain of, any
// of the given domains.
func WithExcludedDomains(domains []string) Option {
	return func(s *Service) {
		for _, d := range domains {
			d = strings.ToLower(strings.TrimSpace(d))
			if d != "" {
				s.excluded = append(s.excluded, d)
			}
		}
	}
}

// NewService returns a Service reading through adapter.
func NewService(adapter browser.Adapter, log logging.Logger, opts ...Option) *Service {
	if log == nil {
		log = logging.Nop()
	}
	s := &Service{adapter: adapter, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Browser returns the browser this service reads.
func (s *Service) Browser() browser.Browser {
	return s.adapter.Browser()
}

// History returns up to limit entries, most recent first. Missing history is
// not retried; check the error with IsNotFound.
func (s *Service) History(ctx context.Context, limit int) ([]browser.Entry, error) {
	entries, err := s.adapter.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(s.excluded) == 0 {
		return entries, nil
	}

	kept := entries[:0]
	for _, e := range entries {
		if !s.isExcluded(e.URL) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Search returns the entries among the limit most recent ones whose title or
// URL contains text, ignoring case. Recency order is preserved.
func (s *Service) Search(ctx context.Context, text string, limit int) ([]browser.Entry, error) {
	matches, _, err := s.search(ctx, text, limit)
	return matches, err
}

// search also returns each match's recency rank in the fetched history.
func (s *Service) search(ctx context.Context, text string, limit int) ([]browser.Entry, []int, error) {
	entries, err := s.History(ctx, limit)
	if err != nil {
		return nil, nil, err
	}

	needle := strings.ToLower(text)
	var (
		matches []browser.Entry
		ranks   []int
	)
	for i, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) || strings.Contains(strings.ToLower(e.URL), needle) {
			matches = append(matches, e)
			ranks = append(ranks, i)
		}
	}
	return matches, ranks, nil
}

// Query runs Search and builds display records. Missing history yields a
// single "not found" record instead of an error; a schema mismatch is a real
// failure and is returned.
func (s *Service) Query(ctx context.Context, text string, limit int) ([]Result, error) {
	matches, ranks, err := s.search(ctx, text, limit)
	if err != nil {
		if IsNotFound(err) {
			s.log.Warn("history not found",
				logging.String("browser", string(s.Browser())),
				logging.Error(err),
			)
			return []Result{{Title: notFoundTitle, Subtitle: notFoundSubtitle, Icon: DefaultIcon, Glyph: DefaultGlyph}}, nil
		}
		s.log.Error("history query failed",
			logging.String("browser", string(s.Browser())),
			logging.Error(err),
		)
		return nil, fmt.Errorf("query %s history: %w", s.Browser(), err)
	}

	results := make([]Result, 0, len(matches))
	for i, e := range matches {
		r := Result{
			Title:    e.Title,
			Subtitle: fmt.Sprintf("%d. %s", ranks[i], e.URL),
			URL:      e.URL,
		}
		if path, ok := s.icon(ctx, e.URL); ok {
			r.IconPath = path
		} else {
			r.Icon, r.Glyph = DefaultIcon, DefaultGlyph
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) icon(ctx context.Context, rawURL string) (string, bool) {
	if s.icons == nil {
		return "", false
	}
	return s.icons.Resolve(ctx, rawURL)
}

// isExcluded checks the entry host against the exclusion list.
func (s *Service) isExcluded(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, d := range s.excluded {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
