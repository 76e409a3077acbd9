package service

import (
	"strings"
	"time"
)

// Fractional seconds are accepted after the seconds field of any layout.
var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseStartDate accepts RFC 3339 timestamps, numeric offsets such as +0100,
// and ISO dates down to a bare year. Forms without an offset are read as UTC.
// Epoch milliseconds arrive as JSON numbers and are converted before this.
func ParseStartDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(time.Millisecond), true
		}
	}
	return time.Time{}, false
}
