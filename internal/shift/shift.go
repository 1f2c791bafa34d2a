// Package shift defines the core domain types for rota: shifts, employees and
// the business-hours window they are scheduled in.
package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyEmployee     = errors.New("employee id cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrOffSlot           = errors.New("shift times must fall on slot boundaries")
	ErrOutsideHours      = errors.New("shift must fall within business hours")
	ErrTooShort          = errors.New("shift must last at least one slot")
)

// Domain errors.
var (
	ErrShiftOverlap     = errors.New("shift overlaps with another shift of the same employee")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is not active")
)

// SlotMinutes is the length of one scheduling slot.
const SlotMinutes = 30

// DayKeyLayout formats the calendar day a shift belongs to.
const DayKeyLayout = "2006-01-02"

// Shift is one scheduled work period for one employee.
type Shift struct {
	ID         string
	EmployeeID string
	Start      time.Time
	End        time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewShift is the payload for creating a shift. The id is assigned by the store.
type NewShift struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
	Notes      string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Start *time.Time
	End   *time.Time
	Notes *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Start == nil && p.End == nil && p.Notes == nil
}

// Apply returns a copy of s with the patch applied.
func (p Patch) Apply(s Shift) Shift {
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}

// New builds a shift payload from CLI-style input.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// start and end must be in HH:MM format, with end after start.
func New(employeeID, date, start, end string) (*NewShift, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmptyEmployee
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if endMin <= startMin {
		return nil, ErrEndBeforeStart
	}

	return &NewShift{
		EmployeeID: employeeID,
		Start:      At(day, startMin),
		End:        At(day, endMin),
	}, nil
}

// ParseClock parses "HH:MM" into minutes since midnight. "24:00" is
// accepted as the end of the day.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, ErrInvalidTimeFormat
	}
	if s == "24:00" {
		return 24 * 60, nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return TimeToMinutes(s), nil
}

// Validate checks the shift invariants against a business-hours window.
func Validate(start, end time.Time, hours TimeRange) error {
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if MinutesOfDay(start)%SlotMinutes != 0 || MinutesOfDay(end)%SlotMinutes != 0 {
		return ErrOffSlot
	}
	if end.Sub(start) < SlotMinutes*time.Minute {
		return ErrTooShort
	}
	if !hours.Contains(start, end) {
		return ErrOutsideHours
	}
	return nil
}

// DayKey returns the calendar day the shift belongs to.
func (s *Shift) DayKey() string {
	return s.Start.Format(DayKeyLayout)
}

// Day returns the shift's calendar day at midnight.
func (s *Shift) Day() time.Time {
	return dateutil.TruncateToDay(s.Start)
}

// Duration returns the shift length in minutes.
func (s *Shift) Duration() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// StartClock returns the start as "HH:MM".
func (s *Shift) StartClock() string {
	return MinutesToTime(MinutesOfDay(s.Start))
}

// EndClock returns the end as "HH:MM". An end at the next midnight is "24:00".
func (s *Shift) EndClock() string {
	return MinutesToTime(int(s.End.Sub(s.Day()).Minutes()))
}

// OverlapsWith returns true if both shifts belong to the same employee and
// day and their half-open intervals intersect.
func (s *Shift) OverlapsWith(other *Shift) bool {
	if other == nil || s.EmployeeID != other.EmployeeID {
		return false
	}
	if s.DayKey() != other.DayKey() {
		return false
	}
	return IntervalsOverlap(s.Start, s.End, other.Start, other.End)
}

// IntervalsOverlap reports whether [a,b) and [c,d) intersect.
// Touching intervals do not overlap.
func IntervalsOverlap(a, b, c, d time.Time) bool {
	return a.Before(d) && c.Before(b)
}
