package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ShiftDetail is the content of the shift editor.
type ShiftDetail struct {
	Employee string
	Day      string
	Time     string
	Duration string
	Notes    string // rendered notes input
	Editing  bool   // notes input has focus
	Pending  bool   // a write for this shift has not settled
}

// ShiftDetailStyles are the styles used by RenderShiftDetail.
type ShiftDetailStyles struct {
	Body         lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Hint         lipgloss.Style
}

// RenderShiftDetail renders the body of the shift editor.
func RenderShiftDetail(d ShiftDetail, styles ShiftDetailStyles) string {
	row := func(label, value string) string {
		return styles.Label.Render(padLabel(label)) + styles.Body.Render(value)
	}

	lines := []string{
		row("Employee", d.Employee),
		row("Day", d.Day),
		row("Time", d.Time+"  ("+d.Duration+")"),
		"",
		styles.Label.Render("Notes"),
	}

	input := styles.Input
	if d.Editing {
		input = styles.InputFocused
	}
	lines = append(lines, input.Render(d.Notes))

	if d.Pending {
		lines = append(lines, "", styles.Hint.Render("Saving..."))
	}
	return strings.Join(lines, "\n")
}

func padLabel(label string) string {
	const w = 10
	if len(label) >= w {
		return label
	}
	return label + strings.Repeat(" ", w-len(label))
}
