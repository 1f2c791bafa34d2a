// Package dateutil provides date parsing and week arithmetic for the roster.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for input that is not a recognised date.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// DateLayout is the canonical date format.
const DateLayout = "2006-01-02"

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	return ParseRelativeDate(s, time.Now())
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": relativeTo's date
//   - "tomorrow", "yesterday"
//   - Weekday names: that day within relativeTo's ISO week
//   - "next-monday" through "next-sunday": that day in the following week
//   - Absolute date: "2025-01-15"
//
// All inputs are case-insensitive. Past dates are allowed: managers edit
// rosters that already started.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	monday, _ := WeekRange(today)
	if strings.HasPrefix(input, "next-") {
		if wd, ok := weekdayMap[strings.TrimPrefix(input, "next-")]; ok {
			return monday.AddDate(0, 0, 7+isoOffset(wd)), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}
	if wd, ok := weekdayMap[input]; ok {
		return monday.AddDate(0, 0, isoOffset(wd)), nil
	}

	result, err := time.ParseInLocation(DateLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// isoOffset returns the distance from Monday: Monday=0 ... Sunday=6.
func isoOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	monday = t.AddDate(0, 0, -isoOffset(t.Weekday()))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
