package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/summary"
)

// PrintOpts configures shift printing behavior.
type PrintOpts struct {
	NameWidth int  // Column width for employee names
	ShowID    bool // Append the shift id
	Width     int  // Maximum line width (0 = terminal width)
}

// width returns the line width to fit rows into.
func (o PrintOpts) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return termWidth()
}

// nameWidth returns the widest name in names, capped at limit.
func nameWidth(names map[string]string, limit int) int {
	w := 0
	for _, n := range names {
		w = min(limit, max(w, ansi.StringWidth(n)))
	}
	return w
}

// PrintShiftRow prints a single shift row with consistent formatting:
//
//	09:00-13:00  Ana       4h  notes  [id]
func PrintShiftRow(w io.Writer, s *shift.Shift, name string, opts PrintOpts) {
	name = ansi.Truncate(name, opts.NameWidth, "…")
	pad := strings.Repeat(" ", max(0, opts.NameWidth-ansi.StringWidth(name)))
	duration := summary.FormatDuration(s.Duration())

	row := fmt.Sprintf("    %s-%s  %s%s  %-5s", s.StartClock(), s.EndClock(), formatName(name), pad, formatStats(duration))
	if s.Notes != "" {
		used := 4 + 11 + 2 + opts.NameWidth + 2 + 5 + 2
		if opts.ShowID {
			used += len(s.ID) + 4
		}
		if room := opts.width() - used; room > 3 {
			row += "  " + ansi.Truncate(s.Notes, room, "…")
		}
	}
	if opts.ShowID {
		row += "  " + formatMuted("["+s.ID+"]")
	}
	fmt.Fprintln(w, row)
}

// printShiftChange reports the result of a mutating command.
func printShiftChange(w io.Writer, verb string, s *shift.Shift, name string) {
	fmt.Fprintf(w, "%s shift %s: %s %s %s-%s (%s)\n",
		verb,
		s.ID,
		formatName(name),
		s.Start.Format("Mon 2006-01-02"),
		s.StartClock(),
		s.EndClock(),
		summary.FormatDuration(s.Duration()),
	)
}

// employeeNames maps employee ids to names.
func employeeNames(employees []*shift.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names
}

// nameOf returns the employee name, or a short id for unknown employees.
func nameOf(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
