package browser

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch dir should be empty")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxLimit, ClampLimit(0))
	assert.Equal(t, MaxLimit, ClampLimit(-5))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 250, ClampLimit(250))
}

func TestSnapshot_NonexistentSourceLeavesNothing(t *testing.T) {
	scratch := t.TempDir()
	r := &SnapshotReader{TempDir: scratch}

	_, err := r.ReadRows(context.Background(), filepath.Join(t.TempDir(), "missing", "History"), chromiumHistoryQuery, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assertEmptyDir(t, scratch)
}

func TestSnapshot_DirectorySourceIsUnavailable(t *testing.T) {
	r := &SnapshotReader{TempDir: t.TempDir()}
	_, err := r.Open(t.TempDir())
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}

func TestSnapshot_ReadsCopyAndCleansUp(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{
		{"https://a.example", "A", 300},
		{"https://b.example", "B", 200},
		{"https://c.example", "C", 100},
	})
	before, err := os.ReadFile(src)
	require.NoError(t, err)

	scratch := t.TempDir()
	r := &SnapshotReader{TempDir: scratch}

	snap, err := r.Open(src)
	require.NoError(t, err)
	path := snap.Path()
	assert.FileExists(t, path)
	assert.Equal(t, scratch, filepath.Dir(path))

	rows, err := snap.Query(context.Background(), chromiumHistoryQuery, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{URL: "https://a.example", Title: "A", Visited: 300}, rows[0])
	assert.Equal(t, Row{URL: "https://b.example", Title: "B", Visited: 200}, rows[1])

	require.NoError(t, snap.Close())
	assert.NoFileExists(t, path)
	assertEmptyDir(t, scratch)

	// Closing twice is harmless.
	assert.NoError(t, snap.Close())

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, before, after, "source database must not change")
}

func TestSnapshot_CloseToleratesMissingScratch(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), nil)
	r := &SnapshotReader{TempDir: t.TempDir()}

	snap, err := r.Open(src)
	require.NoError(t, err)
	require.NoError(t, os.Remove(snap.Path()))

	assert.NoError(t, snap.Close())
}

func TestSnapshot_SchemaMismatchStillCleansUp(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{{"https://a.example", "A", 1}})
	scratch := t.TempDir()
	r := &SnapshotReader{TempDir: scratch}

	_, err := r.ReadRows(context.Background(), src, geckoHistoryQuery, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assertEmptyDir(t, scratch)
}

func TestSnapshot_NotADatabase(t *testing.T) {
	src := filepath.Join(t.TempDir(), "History")
	require.NoError(t, os.WriteFile(src, []byte("definitely not sqlite, just some bytes that are long enough to fail"), 0644))
	scratch := t.TempDir()
	r := &SnapshotReader{TempDir: scratch}

	_, err := r.ReadRows(context.Background(), src, chromiumHistoryQuery, 10)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assertEmptyDir(t, scratch)
}

func TestSnapshot_NullColumns(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{
		{"https://untitled.example", nil, 20},
		{"", "empty url", 10},
	})
	r := &SnapshotReader{TempDir: t.TempDir()}

	rows, err := r.ReadRows(context.Background(), src, chromiumHistoryQuery, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{URL: "https://untitled.example", Title: "", Visited: 20}, rows[0])
}

func TestSnapshot_ConcurrentReadersUseDistinctCopies(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{{"https://a.example", "A", 1}})
	r := &SnapshotReader{TempDir: t.TempDir()}

	s1, err := r.Open(src)
	require.NoError(t, err)
	defer s1.Close()
	s2, err := r.Open(src)
	require.NoError(t, err)
	defer s2.Close()

	assert.NotEqual(t, s1.Path(), s2.Path())
}

func TestSnapshot_ScratchDirWithURIMetacharacters(t *testing.T) {
	src := writeChromiumDB(t, t.TempDir(), []fixtureVisit{
		{"https://a.example", "A", 300},
	})

	names := []string{"a#b", "x%41y", "John Smith"}
	if runtime.GOOS != "windows" {
		names = append(names, "q?z")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			scratch := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.MkdirAll(scratch, 0755))
			r := &SnapshotReader{TempDir: scratch}

			rows, err := r.ReadRows(context.Background(), src, chromiumHistoryQuery, 10)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "https://a.example", rows[0].URL)
			assertEmptyDir(t, scratch)
		})
	}
}

func TestSnapshotDSN_EscapesPath(t *testing.T) {
	dsn := snapshotDSN(filepath.Join(t.TempDir(), "a#b", "x%41y?z.sqlite"))
	assert.Contains(t, dsn, "a%23b")
	assert.Contains(t, dsn, "x%2541y%3Fz.sqlite")
	assert.True(t, strings.HasPrefix(dsn, "file:///"), dsn)
	assert.True(t, strings.HasSuffix(dsn, "?mode=ro&immutable=1"), dsn)
}
