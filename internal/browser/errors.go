package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound means no profile directory matched any known pattern.
	ErrProfileNotFound = errors.New("browser profile not found")

	// ErrHistoryUnavailable means the history database is missing or unreadable.
	ErrHistoryUnavailable = errors.New("history database unavailable")

	// ErrSchemaMismatch means the query failed against the database copy,
	// usually because the wrong family was assumed for the file.
	ErrSchemaMismatch = errors.New("history schema mismatch")
)

// ProfileNotFoundError carries the directory that was searched.
type ProfileNotFoundError struct {
	Root string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("no Firefox/Zen profile found in %s", e.Root)
}

// Is makes errors.Is(err, ErrProfileNotFound) hold.
func (e *ProfileNotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}
