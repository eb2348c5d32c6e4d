package browser

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_SelectsByFamily(t *testing.T) {
	a, err := NewAdapter(Edge, FixedLocator{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &chromiumAdapter{}, a)
	assert.Equal(t, Edge, a.Browser())

	a, err = NewAdapter(Zen, FixedLocator{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &geckoAdapter{}, a)

	_, err = NewAdapter(Browser("lynx"), FixedLocator{}, nil)
	assert.Error(t, err)
}

func TestChromiumAdapter_History(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{
		{"https://old.example", "Old", 13300000000000000},
		{"https://example.com/page", "", 13300000500000000},
		{"https://new.example", "New", 13300000900000000},
	})
	scratch := t.TempDir()
	a, err := NewAdapter(Chrome, FixedLocator{Path: src}, &SnapshotReader{TempDir: scratch})
	require.NoError(t, err)

	entries, err := a.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "https://new.example", entries[0].URL)
	assert.Equal(t, "https://example.com/page", entries[1].URL)
	assert.Equal(t, "https://example.com/page", entries[1].Title)
	assert.Equal(t, "https://old.example", entries[2].URL)
	for _, e := range entries {
		assert.Equal(t, FamilyChromium, e.Family)
	}
	assertEmptyDir(t, scratch)
}

func TestChromiumAdapter_Limit(t *testing.T) {
	var visits []fixtureVisit
	for i := 0; i < 25; i++ {
		visits = append(visits, fixtureVisit{"https://example.com/" + string(rune('a'+i)), "page", int64(i)})
	}
	src := writeChromiumDB(t, t.TempDir(), visits)
	a, err := NewAdapter(Vivaldi, FixedLocator{Path: src}, &SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)

	entries, err := a.History(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.Equal(t, int64(24), entries[0].Visited)

	entries, err = a.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 25)
}

func TestGeckoAdapter_History(t *testing.T) {
	src := writeGeckoDB(t, t.TempDir(), []fixtureVisit{
		{"https://go.dev", "Go", 1700000000000000},
		{"https://mozilla.org", nil, 1700000100000000},
		{"https://go.dev", "Go", 1700000200000000},
	})
	a, err := NewAdapter(Firefox, FixedLocator{Path: src}, &SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)

	entries, err := a.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3, "one entry per visit")

	assert.Equal(t, "https://go.dev", entries[0].URL)
	assert.Equal(t, int64(1700000200000000), entries[0].Visited)
	assert.Equal(t, "https://mozilla.org", entries[1].Title)
	assert.Equal(t, FamilyGecko, entries[1].Family)
	assert.Equal(t, int64(1700000100), entries[1].Time().Unix())
}

func TestGeckoAdapter_ViaProfileSearch(t *testing.T) {
	home := t.TempDir()
	profile := filepath.Join(home, ".mozilla", "firefox", "q1w2.default-release")
	mkdirs(t, profile)
	writeGeckoDB(t, profile, []fixtureVisit{{"https://example.org", "Example", 1}})

	a, err := NewAdapter(Firefox, &Locator{GOOS: "linux", Home: home}, &SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)

	entries, err := a.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Example", entries[0].Title)
}

func TestAdapter_MissingDatabase(t *testing.T) {
	a, err := NewAdapter(Chrome, FixedLocator{Path: filepath.Join(t.TempDir(), "History")}, &SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)

	_, err = a.History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}

func TestAdapter_WrongFamily(t *testing.T) {
	src := writeGeckoDB(t, t.TempDir(), []fixtureVisit{{"https://example.org", "Example", 1}})
	a, err := NewAdapter(Chrome, FixedLocator{Path: src}, &SnapshotReader{TempDir: t.TempDir()})
	require.NoError(t, err)

	_, err = a.History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
