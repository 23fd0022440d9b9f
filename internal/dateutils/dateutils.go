// Package dateutils parses free-form date tokens found in bank exports
// against a fixed, ordered list of layouts.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayoutISO is the canonical output layout for normalized dates.
const DateLayoutISO = "2006-01-02"

// Layouts tried in order. Ambiguous day-first vs month-first tokens are
// resolved purely by this order; US month-first wins. Layouts without a year
// assume the current year.
var dateLayouts = []string{
	DateLayoutISO,         // 2024-01-15
	"01/02/2006",          // 01/15/2024 (US)
	"02/01/2006",          // 15/01/2024 (EU)
	"2006/01/02",          // 2024/01/15
	"02-01-2006",          // 15-01-2024
	"01-02-2006",          // 01-15-2024
	"02.01.2006",          // 15.01.2024
	"2006-01-02 15:04:05", // 2024-01-15 10:30:00
	"01/02/2006 15:04:05", // 01/15/2024 10:30:00
	"02/01/2006 15:04:05", // 15/01/2024 10:30:00
	"01/02/06",            // two-digit year variants
	"01-02-06",
	"02/01/06",
	"02-01-06",
	"01 02, 2006", // "Jan 15, 2024" after month substitution
	"02 01 2006",  // "15 Jan 2024" after month substitution
	"01/02",       // month/day only, current year assumed
	"01-02",
}

var yearlessLayouts = map[string]bool{
	"01/02": true,
	"01-02": true,
}

var monthAbbrevs = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

var (
	monthAbbrevRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
)

// ParseDate parses a raw date token, returning the parsed time or an error
// when no layout matches.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date token")
	}

	// Substitute three-letter month abbreviations with their numeric form so
	// tokens like "15 Jan 2024" fall through to the numeric layouts.
	cleaned = monthAbbrevRe.ReplaceAllStringFunc(cleaned, func(m string) string {
		return monthAbbrevs[strings.ToLower(m)]
	})

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		if yearlessLayouts[layout] {
			now := time.Now()
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// CleanDateString trims a date token and collapses internal whitespace runs.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return spaceRunRe.ReplaceAllString(dateStr, " ")
}
