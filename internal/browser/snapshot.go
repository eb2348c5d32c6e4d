package browser

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// MaxLimit bounds how many rows a single read may return.
const MaxLimit = 10000

// ClampLimit maps a requested limit into 1..MaxLimit. Non-positive values
// mean "as many as allowed".
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Row is one raw (url, title, timestamp) tuple as stored by the browser.
type Row struct {
	URL     string
	Title   string
	Visited int64
}

// SnapshotReader reads history from private copies of browser databases.
type SnapshotReader struct {
	// TempDir holds scratch copies. Empty means os.TempDir().
	TempDir string
}

// Snapshot is an open read-only copy of a history database. It owns its
// scratch file; Close releases the connection and removes the file.
type Snapshot struct {
	path string
	db   *sql.DB
}

// Open copies src into a scratch file and opens the copy read-only. The live
// database is never opened.
func (r *SnapshotReader) Open(src string) (*Snapshot, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, ErrHistoryUnavailable)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", src, ErrHistoryUnavailable)
	}

	dir := r.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	scratch := filepath.Join(dir, "browserhist-"+uuid.NewString()+".sqlite")

	if err := copyFile(src, scratch); err != nil {
		os.Remove(scratch) //nolint:errcheck
		return nil, fmt.Errorf("copy %s: %v: %w", src, err, ErrHistoryUnavailable)
	}

	db, err := sql.Open("sqlite3", snapshotDSN(scratch))
	if err != nil {
		os.Remove(scratch) //nolint:errcheck
		return nil, fmt.Errorf("open snapshot: %v: %w", err, ErrHistoryUnavailable)
	}
	db.SetMaxOpenConns(1)

	return &Snapshot{path: scratch, db: db}, nil
}

// ReadRows snapshots src, runs query with a bound row limit and cleans up on
// every path.
func (r *SnapshotReader) ReadRows(ctx context.Context, src, query string, limit int) ([]Row, error) {
	snap, err := r.Open(src)
	if err != nil {
		return nil, err
	}
	defer snap.Close() //nolint:errcheck

	return snap.Query(ctx, query, limit)
}

// Path returns the scratch file backing the snapshot.
func (s *Snapshot) Path() string {
	return s.path
}

// Query appends a parameterised LIMIT to query and returns the matched rows
// in order. The query must select url, title and a timestamp column.
func (s *Snapshot) Query(ctx context.Context, query string, limit int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query+" LIMIT ?", ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query history: %v: %w", err, ErrSchemaMismatch)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			u       sql.NullString
			title   sql.NullString
			visited sql.NullInt64
		)
		if err := rows.Scan(&u, &title, &visited); err != nil {
			return nil, fmt.Errorf("scan history row: %v: %w", err, ErrSchemaMismatch)
		}
		if !u.Valid || u.String == "" {
			continue
		}
		out = append(out, Row{URL: u.String, Title: title.String, Visited: visited.Int64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history rows: %v: %w", err, ErrSchemaMismatch)
	}

	return out, nil
}

// Close closes the connection and deletes the scratch copy. A file that is
// already gone is not an error.
func (s *Snapshot) Close() error {
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
		s.db = nil
	}
	if s.path != "" {
		// Removal failures only affect disk hygiene, never the result.
		os.Remove(s.path) //nolint:errcheck
		s.path = ""
	}
	return closeErr
}

// snapshotDSN builds a read-only SQLite URI for path. The path is
// percent-escaped so '#', '?' and '%' in directory names stay literal.
// immutable=1 keeps SQLite from creating -wal/-shm files next to the copy.
func snapshotDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths: file:///C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro&immutable=1"}
	return u.String()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
