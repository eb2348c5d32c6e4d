package browser

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

type fixtureVisit struct {
	url   string
	title any // string or nil
	ts    int64
}

// writeChromiumDB creates a Chromium-style History database in dir.
func writeChromiumDB(t *testing.T, dir string, visits []fixtureVisit) string {
	t.Helper()
	path := filepath.Join(dir, "History")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL
	)`)
	require.NoError(t, err)

	for _, v := range visits {
		_, err := db.Exec("INSERT INTO urls (url, title, last_visit_time) VALUES (?, ?, ?)", v.url, v.title, v.ts)
		require.NoError(t, err)
	}
	return path
}

// writeGeckoDB creates a places.sqlite with one visit row per fixture entry.
func writeGeckoDB(t *testing.T, dir string, visits []fixtureVisit) string {
	t.Helper()
	path := filepath.Join(dir, "places.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR)`,
		`CREATE TABLE moz_historyvisits (id INTEGER PRIMARY KEY, place_id INTEGER, visit_date INTEGER)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	placeIDs := map[string]int64{}
	for _, v := range visits {
		id, ok := placeIDs[v.url]
		if !ok {
			res, err := db.Exec("INSERT INTO moz_places (url, title) VALUES (?, ?)", v.url, v.title)
			require.NoError(t, err)
			id, err = res.LastInsertId()
			require.NoError(t, err)
			placeIDs[v.url] = id
		}
		_, err := db.Exec("INSERT INTO moz_historyvisits (place_id, visit_date) VALUES (?, ?)", id, v.ts)
		require.NoError(t, err)
	}
	return path
}
