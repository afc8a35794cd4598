// Package dateutils provides date parsing helpers shared by the parsers, the
// filters and the configuration checks.
package dateutils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISODateLayout is the YYYY-MM-DD layout used on the command line.
const ISODateLayout = "2006-01-02"

// ParseDate parses value with the first layout that accepts it. Surrounding
// whitespace is ignored.
func ParseDate(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range layouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q does not match any of %q", value, layouts)
}

// WithUnpaddedDay returns layouts, each followed by its variant accepting a day
// without leading zero ("2 Jan 2006" for "02 Jan 2006"). Duplicates and empty
// layouts are dropped.
func WithUnpaddedDay(layouts []string) []string {
	out := make([]string, 0, len(layouts)*2)
	seen := make(map[string]bool)
	add := func(layout string) {
		if layout != "" && !seen[layout] {
			seen[layout] = true
			out = append(out, layout)
		}
	}
	for _, layout := range layouts {
		add(layout)
		add(strings.Replace(layout, "02", "2", 1))
	}
	return out
}

// StartOfDay truncates t to midnight UTC of its calendar date. The zero time stays zero.
func StartOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsDateLayout reports whether layout formats and parses back a calendar date.
func IsDateLayout(layout string) bool {
	if strings.TrimSpace(layout) == "" {
		return false
	}
	ref := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	return err == nil && parsed.Equal(ref)
}
