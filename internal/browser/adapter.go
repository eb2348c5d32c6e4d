package browser

import (
	"context"
	"fmt"
)

const (
	chromiumHistoryQuery = `SELECT url, title, last_visit_time FROM urls ORDER BY last_visit_time DESC`

	geckoHistoryQuery = `SELECT moz_places.url, moz_places.title, moz_historyvisits.visit_date
		FROM moz_places
		INNER JOIN moz_historyvisits ON moz_historyvisits.place_id = moz_places.id
		ORDER BY moz_historyvisits.visit_date DESC`
)

// Adapter reads normalized history for one browser.
type Adapter interface {
	Browser() Browser
	// History returns up to limit entries, most recent first.
	History(ctx context.Context, limit int) ([]Entry, error)
}

// NewAdapter returns the adapter matching b's family. The profile is resolved
// on every call because multi-profile browsers can rewrite their layout
// between runs.
func NewAdapter(b Browser, locator ProfileLocator, reader *SnapshotReader) (Adapter, error) {
	if reader == nil {
		reader = &SnapshotReader{}
	}
	base := adapterBase{browser: b, locator: locator, reader: reader}

	switch b.Family() {
	case FamilyChromium:
		return &chromiumAdapter{base}, nil
	case FamilyGecko:
		return &geckoAdapter{base}, nil
	default:
		return nil, fmt.Errorf("no history adapter for browser %q", b)
	}
}

type adapterBase struct {
	browser Browser
	locator ProfileLocator
	reader  *SnapshotReader
}

func (a adapterBase) Browser() Browser { return a.browser }

func (a adapterBase) fetch(ctx context.Context, family Family, query string, limit int) ([]Entry, error) {
	profile, err := a.locator.Locate(a.browser)
	if err != nil {
		return nil, fmt.Errorf("locate %s history: %w", a.browser, err)
	}

	rows, err := a.reader.ReadRows(ctx, profile.DatabasePath, query, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("read %s history: %w", a.browser, err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = NewEntry(family, row)
	}
	return entries, nil
}

// chromiumAdapter reads the urls table of Chromium-derived browsers.
type chromiumAdapter struct {
	adapterBase
}

func (a *chromiumAdapter) History(ctx context.Context, limit int) ([]Entry, error) {
	return a.fetch(ctx, FamilyChromium, chromiumHistoryQuery, limit)
}

// geckoAdapter reads places joined with visits, one row per visit.
type geckoAdapter struct {
	adapterBase
}

func (a *geckoAdapter) History(ctx context.Context, limit int) ([]Entry, error) {
	return a.fetch(ctx, FamilyGecko, geckoHistoryQuery, limit)
}
