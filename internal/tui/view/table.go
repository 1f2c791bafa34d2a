package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableViewState holds data needed to render a bordered table.
type TableViewState struct {
	Headers     []string
	Rows        [][]string
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
	TotalStyle  lipgloss.Style // last row, when HasTotal
	BorderStyle lipgloss.Style
	HasTotal    bool
}

// RenderTable renders rows with a lipgloss table. Numeric columns after the
// first are right aligned.
func RenderTable(state TableViewState) string {
	last := len(state.Rows) - 1
	t := table.New().
		Headers(state.Headers...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(state.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := state.CellStyle
			switch {
			case row == table.HeaderRow:
				style = state.HeaderStyle
			case state.HasTotal && row == last:
				style = state.TotalStyle
			}
			style = style.Padding(0, 1)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	return t.Render()
}
