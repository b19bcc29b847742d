// Package dateutils provides the date parsing used by the row normalizer.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	separatorRe  = regexp.MustCompile(`[/\-.]`)
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
)

// CleanDateString trims the string and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// ParseDayMonthYear parses day/month/year text where the three parts may be
// separated by '/', '-' or '.'. A trailing time ("01/03/2024 10:15") is
// ignored, two-digit years are taken as 20yy, and a leading four-digit part
// is read as year-month-day. Parts are unsigned digits: day and month have one
// or two, the year two or four. The parts must name a real calendar day.
func ParseDayMonthYear(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	// drop a time-of-day suffix
	if idx := strings.IndexByte(clean, ' '); idx >= 0 {
		clean = clean[:idx]
	}

	parts := separatorRe.Split(clean, -1)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unable to parse date %q: expected 3 parts, got %d", dateStr, len(parts))
	}

	yearIdx, dayIdx := 2, 0
	if len(parts[0]) == 4 {
		yearIdx, dayIdx = 0, 2
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if !digitsRe.MatchString(p) {
			return time.Time{}, fmt.Errorf("unable to parse date %q: %q is not a number", dateStr, p)
		}
		if i == yearIdx {
			if len(p) != 2 && len(p) != 4 {
				return time.Time{}, fmt.Errorf("unable to parse date %q: year must have 2 or 4 digits", dateStr)
			}
		} else if len(p) > 2 {
			return time.Time{}, fmt.Errorf("unable to parse date %q: day and month have at most 2 digits", dateStr)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
		}
		nums[i] = n
	}

	year, month, day := nums[yearIdx], nums[1], nums[dayIdx]
	if len(parts[yearIdx]) == 2 {
		year += 2000
	}

	return Date(year, month, day)
}

// Date builds a UTC calendar date, rejecting values that time.Date would
// normalize into a different day (31/02, 00/01, ...).
func Date(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month out of range: %d", month)
	}
	if year < 1 {
		return time.Time{}, fmt.Errorf("year out of range: %d", year)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid calendar date: %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}
