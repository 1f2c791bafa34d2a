package shift

import (
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// Week holds the shifts of 7 days starting from Monday.
type Week struct {
	StartDate time.Time   // Monday of the week
	Days      [7][]*Shift // Monday (0) through Sunday (6)
}

// NewWeek creates an empty Week starting from the Monday of the given date.
func NewWeek(date time.Time) *Week {
	monday, _ := dateutil.WeekRange(date)
	return &Week{StartDate: monday}
}

// NewWeekFromShifts creates a Week and distributes shifts to their days.
// Shifts outside the week are ignored. Each day is sorted by start, then employee.
func NewWeekFromShifts(date time.Time, shifts []*Shift) *Week {
	w := NewWeek(date)
	for _, s := range shifts {
		if s == nil {
			continue
		}
		if i := w.DayIndex(s.Start); i >= 0 {
			w.Days[i] = append(w.Days[i], s)
		}
	}
	for i := range w.Days {
		slices.SortFunc(w.Days[i], compareShifts)
	}
	return w
}

func compareShifts(a, b *Shift) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return strings.Compare(a.EmployeeID, b.EmployeeID)
}

// DayIndex returns the 0-based weekday index of t in this week, or -1.
func (w *Week) DayIndex(t time.Time) int {
	d := dateutil.TruncateToDay(t)
	for i := 0; i < 7; i++ {
		if d.Equal(w.Date(i)) {
			return i
		}
	}
	return -1
}

// Date returns the date of day i (0=Monday).
func (w *Week) Date(i int) time.Time {
	return w.StartDate.AddDate(0, 0, i)
}

// EndDate returns the Sunday of the week.
func (w *Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// AllShifts returns all shifts across all days, sorted by day and start time.
func (w *Week) AllShifts() []*Shift {
	var result []*Shift
	for _, day := range w.Days {
		result = append(result, day...)
	}
	return result
}

// Len returns the number of shifts in the week.
func (w *Week) Len() int {
	n := 0
	for _, day := range w.Days {
		n += len(day)
	}
	return n
}

// MinutesByEmployee sums scheduled minutes per employee id.
func (w *Week) MinutesByEmployee() map[string]int {
	result := make(map[string]int)
	for _, day := range w.Days {
		for _, s := range day {
			result[s.EmployeeID] += s.Duration()
		}
	}
	return result
}
