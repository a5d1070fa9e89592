package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// StorageLayout is the normalized, lexically sortable form dates are persisted in.
	StorageLayout = "2006-01-02T15:04:05.000Z"
	// DisplayLayout is the human-readable form returned to clients.
	DisplayLayout = "Mon Jan 02 2006"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// layouts cast does not know about.
var extraLayouts = []string{
	DisplayLayout,
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2006/01/02",
	"2006-01-02T15:04",
}

// ParseDate parses a client supplied date. Values without a zone are read in
// the process-local zone so that a bare calendar date stays on the same day
// when rendered back.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range extraLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := cast.ToTimeInDefaultLocationE(raw, time.Local)
	if err != nil || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// NormalizeDate renders t in StorageLayout.
func NormalizeDate(t time.Time) string {
	return t.UTC().Format(StorageLayout)
}

// ParseStoredDate reverses NormalizeDate.
func ParseStoredDate(s string) (time.Time, error) {
	t, err := time.Parse(StorageLayout, s)
	if err != nil {
		// rows written by other tools may carry plain RFC 3339
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse stored date %q: %w", s, err)
		}
	}
	return t, nil
}

// DisplayDate renders t as a calendar day in the process-local zone.
func DisplayDate(t time.Time) string {
	return t.In(time.Local).Format(DisplayLayout)
}
