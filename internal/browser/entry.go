package browser

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// chromiumEpochOffset is the number of seconds between 1601-01-01 and
// 1970-01-01, both UTC.
const chromiumEpochOffset = 11644473600

// chromiumEpochOffsetMicros is chromiumEpochOffset in microseconds.
const chromiumEpochOffsetMicros = chromiumEpochOffset * 1_000_000

// Entry is a normalized history visit. Visited keeps the browser's native
// timestamp; Time decodes it according to Family.
type Entry struct {
	URL     string
	Title   string
	Visited int64
	Family  Family
}

// NewEntry builds an Entry from a raw row. A blank title falls back to the URL.
func NewEntry(family Family, row Row) Entry {
	title := row.Title
	if strings.TrimSpace(title) == "" {
		title = row.URL
	}
	return Entry{URL: row.URL, Title: title, Visited: row.Visited, Family: family}
}

// Time returns the visit time in the local time zone.
func (e Entry) Time() time.Time {
	return DecodeTimestamp(e.Family, e.Visited)
}

// DecodeTimestamp converts a native history timestamp to local time.
// Chromium counts microseconds since 1601-01-01 UTC, Gecko microseconds since
// the Unix epoch. An unknown family is decoded as Gecko after a warning so a
// single odd value cannot void a result set.
func DecodeTimestamp(family Family, raw int64) time.Time {
	switch family {
	case FamilyChromium:
		return time.UnixMicro(raw - chromiumEpochOffsetMicros).Local()
	case FamilyGecko:
		return time.UnixMicro(raw).Local()
	default:
		zap.L().Warn("unknown browser family, decoding timestamp as unix microseconds",
			zap.Stringer("family", family),
			zap.Int64("timestamp", raw),
		)
		return time.UnixMicro(raw).Local()
	}
}

// EncodeTimestamp is the inverse of DecodeTimestamp.
func EncodeTimestamp(family Family, t time.Time) int64 {
	if family == FamilyChromium {
		return t.UnixMicro() + chromiumEpochOffsetMicros
	}
	return t.UnixMicro()
}
