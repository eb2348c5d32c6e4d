package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/history"
	"github.com/runnerr0/browserhist/internal/logging"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeHistoryDB creates a Chromium-style History database in dir. Visits are
// given most recent first and spaced one minute apart.
func writeHistoryDB(t *testing.T, dir string, visits [][2]string) string {
	t.Helper()
	path := filepath.Join(dir, "History")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY,
		url LONGVARCHAR,
		title LONGVARCHAR,
		last_visit_time INTEGER NOT NULL
	)`)
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range visits {
		ts := browser.EncodeTimestamp(browser.FamilyChromium, base.Add(-time.Duration(i)*time.Minute))
		_, err := db.Exec("INSERT INTO urls (url, title, last_visit_time) VALUES (?, ?, ?)", v[0], v[1], ts)
		require.NoError(t, err)
	}
	return path
}

// newTestService builds a chrome history service over a fixture database.
func newTestService(t *testing.T, dbPath string, opts ...history.Option) *history.Service {
	t.Helper()
	adapter, err := browser.NewAdapter(browser.Chrome, browser.FixedLocator{Path: dbPath}, &browser.SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)
	return history.NewService(adapter, logging.Nop(), opts...)
}

var sampleVisits = [][2]string{
	{"https://go.dev/doc/", "Documentation - The Go Programming Language"},
	{"https://news.ycombinator.com/", "Hacker News"},
	{"https://pkg.go.dev/net/http", "http package"},
	{"https://example.com/", ""},
}
