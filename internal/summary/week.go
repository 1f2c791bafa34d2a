// Package summary provides shared week summary utilities.
package summary

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/shift"
)

// Source is what the summary needs from storage.
type Source interface {
	ListShiftsByDateRange(ctx context.Context, start, end time.Time) ([]*shift.Shift, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]*shift.Employee, error)
}

// EmployeeHours is one row of the hours table.
type EmployeeHours struct {
	EmployeeID string
	Name       string
	Minutes    int
	Shifts     int
	Active     bool
}

// WeekSummary holds a week of shifts and the hours each employee works.
type WeekSummary struct {
	Start        time.Time
	End          time.Time
	Week         *shift.Week
	Hours        []EmployeeHours // most hours first
	TotalMinutes int

	names map[string]string
}

// SummarizeWeek builds week summary data from shifts and a reference date.
func SummarizeWeek(date time.Time, shifts []*shift.Shift, employees []*shift.Employee) *WeekSummary {
	start, end := dateutil.WeekRange(date)
	week := shift.NewWeekFromShifts(start, shifts)

	s := &WeekSummary{
		Start: start,
		End:   end,
		Week:  week,
		names: make(map[string]string, len(employees)),
	}

	active := make(map[string]bool, len(employees))
	for _, e := range employees {
		s.names[e.ID] = e.Name
		active[e.ID] = e.IsActive()
	}

	counts := make(map[string]int)
	for _, sh := range week.AllShifts() {
		counts[sh.EmployeeID]++
	}
	for id, minutes := range week.MinutesByEmployee() {
		s.Hours = append(s.Hours, EmployeeHours{
			EmployeeID: id,
			Name:       s.EmployeeName(id),
			Minutes:    minutes,
			Shifts:     counts[id],
			Active:     active[id],
		})
		s.TotalMinutes += minutes
	}
	slices.SortFunc(s.Hours, func(a, b EmployeeHours) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return s
}

// BuildWeekSummary loads the week containing date from src.
func BuildWeekSummary(ctx context.Context, src Source, date time.Time) (*WeekSummary, error) {
	if date.IsZero() {
		date = time.Now()
	}
	start, end := dateutil.WeekRange(date)

	shifts, err := src.ListShiftsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching shifts: %w", err)
	}
	employees, err := src.ListEmployees(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetching employees: %w", err)
	}
	return SummarizeWeek(start, shifts, employees), nil
}

// EmployeeName returns the roster name for id, or a short form of the id.
func (s *WeekSummary) EmployeeName(id string) string {
	if name, ok := s.names[id]; ok {
		return name
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PlainText renders the week as uncolored text for the clipboard.
func (s *WeekSummary) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s - %s\n", s.Start.Format("Mon 02 Jan 2006"), s.End.Format("Mon 02 Jan 2006"))

	for i, day := range s.Week.Days {
		fmt.Fprintf(&b, "\n%s\n", s.Week.Date(i).Format("Mon 02 Jan"))
		if len(day) == 0 {
			b.WriteString("  -\n")
			continue
		}
		for _, sh := range day {
			fmt.Fprintf(&b, "  %s-%s  %s", sh.StartClock(), sh.EndClock(), s.EmployeeName(sh.EmployeeID))
			if sh.Notes != "" {
				fmt.Fprintf(&b, " (%s)", sh.Notes)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Hours) > 0 {
		b.WriteString("\nHours\n")
		for _, h := range s.Hours {
			fmt.Fprintf(&b, "  %-16s %6s  %d shifts\n", h.Name, FormatDuration(h.Minutes), h.Shifts)
		}
		fmt.Fprintf(&b, "  %-16s %6s\n", "Total", FormatDuration(s.TotalMinutes))
	}
	return b.String()
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
