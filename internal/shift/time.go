package shift

import (
	"fmt"
	"time"
)

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// 1440 renders as "24:00" so a window closing at midnight stays printable.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > 24*60 {
		m = 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinutesOfDay returns the wall-clock minutes since midnight of t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// At returns the wall-clock instant m minutes after midnight of day.
func At(day time.Time, m int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(m) * time.Minute)
}

// TimeRange is the business-hours window [StartMinutes, EndMinutes) of a day.
type TimeRange struct {
	StartMinutes int
	EndMinutes   int
}

// DefaultTimeRange is used when no business hours are configured: 07:00-21:00.
var DefaultTimeRange = TimeRange{StartMinutes: 7 * 60, EndMinutes: 21 * 60}

// NewTimeRange builds a window from "HH:MM" strings.
func NewTimeRange(start, end string) TimeRange {
	return TimeRange{StartMinutes: TimeToMinutes(start), EndMinutes: TimeToMinutes(end)}
}

// OrDefault returns DefaultTimeRange when r is unset or inverted.
func (r TimeRange) OrDefault() TimeRange {
	if r.EndMinutes <= r.StartMinutes {
		return DefaultTimeRange
	}
	return r
}

// Len returns the window length in minutes.
func (r TimeRange) Len() int {
	return r.EndMinutes - r.StartMinutes
}

// Open returns the opening instant on day.
func (r TimeRange) Open(day time.Time) time.Time {
	return At(day, r.StartMinutes)
}

// Close returns the closing instant on day.
func (r TimeRange) Close(day time.Time) time.Time {
	return At(day, r.EndMinutes)
}

// Contains reports whether [start, end) lies inside the window of start's day.
func (r TimeRange) Contains(start, end time.Time) bool {
	return !start.Before(r.Open(start)) && !end.After(r.Close(start))
}

// String returns "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return MinutesToTime(r.StartMinutes) + "-" + MinutesToTime(r.EndMinutes)
}
