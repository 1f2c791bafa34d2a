package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/summary"
)

// WeekSummaryStyles are the styles used by RenderWeekSummary.
type WeekSummaryStyles struct {
	Body  lipgloss.Style
	Muted lipgloss.Style
	Table TableViewState // styles only; headers and rows are filled in
}

// WeekSummaryRows builds the hours table rows, with a trailing total row.
func WeekSummaryRows(s *summary.WeekSummary) [][]string {
	rows := make([][]string, 0, len(s.Hours)+1)
	shifts := 0
	for _, h := range s.Hours {
		name := h.Name
		if !h.Active {
			name += " (inactive)"
		}
		rows = append(rows, []string{name, fmt.Sprint(h.Shifts), summary.FormatDuration(h.Minutes)})
		shifts += h.Shifts
	}
	rows = append(rows, []string{"Total", fmt.Sprint(shifts), summary.FormatDuration(s.TotalMinutes)})
	return rows
}

// CoverageLine lists the number of shifts on each day of the week.
func CoverageLine(s *summary.WeekSummary) string {
	parts := make([]string, 0, len(s.Week.Days))
	for i, day := range s.Week.Days {
		parts = append(parts, fmt.Sprintf("%s %d", s.Week.Date(i).Format("Mon"), len(day)))
	}
	return strings.Join(parts, "  ")
}

// RenderWeekSummary renders the body of the week summary modal.
func RenderWeekSummary(s *summary.WeekSummary, styles WeekSummaryStyles) string {
	if s == nil {
		return styles.Muted.Render("No data")
	}
	if len(s.Hours) == 0 {
		return styles.Muted.Render("No shifts scheduled this week")
	}

	state := styles.Table
	state.Headers = []string{"Employee", "Shifts", "Hours"}
	state.Rows = WeekSummaryRows(s)
	state.HasTotal = true

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTable(state),
		"",
		styles.Muted.Render(CoverageLine(s)),
	)
}
