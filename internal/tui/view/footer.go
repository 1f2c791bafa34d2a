package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	StatusLine  string
	HelpLine    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// FooterHeight is the number of rows the footer occupies.
const FooterHeight = 2

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.InnerW <= 0 {
		return ""
	}
	s := Cell(state.StatusLine, state.InnerW, state.StatusStyle) + "\n" +
		Cell(state.HelpLine, state.InnerW, state.HelpStyle)
	return PlaceBox(state.InnerW, FooterHeight, lipgloss.Bottom, s, state.Bg)
}
