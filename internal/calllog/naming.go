package calllog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sheetNameLayout formats a date as e.g. "Wed 12.17.2025", the tab naming
// convention of the Call Log spreadsheet.
const sheetNameLayout = "Mon 01.02.2006"

// DateParseError reports a call date that could not be interpreted. Callers
// decide whether to abort or to proceed with the accompanying fallback date.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse call date %q", e.Input)
}

// parseLayouts are tried in order before the manual YYYY-MM-DD split.
var parseLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// ParseCallDate interprets a reservation's call date string. On failure it
// returns today's date together with a *DateParseError, so a caller that
// chooses availability over correctness can still file the entry.
func ParseCallDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// Manual split handles sloppy YYYY-M-D input that the strict layouts
	// reject.
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		y, yerr := strconv.Atoi(parts[0])
		m, merr := strconv.Atoi(parts[1])
		d, derr := strconv.Atoi(parts[2])
		if yerr == nil && merr == nil && derr == nil && m >= 1 && m <= 12 && d >= 1 && d <= 31 {
			return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Now(), &DateParseError{Input: s}
}

// SheetName formats a date as a Call Log tab name.
func SheetName(t time.Time) string {
	return t.Format(sheetNameLayout)
}

// SheetNameForDate maps a call date string to its tab name. The returned
// name is always usable; a non-nil *DateParseError signals that it fell back
// to today.
func SheetNameForDate(callDate string) (string, error) {
	t, err := ParseCallDate(callDate)
	return SheetName(t), err
}
