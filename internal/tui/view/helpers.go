package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Cell renders text in a box exactly width cells wide, truncating with an
// ellipsis when it does not fit.
func Cell(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "…")
	return style.Width(width).MaxWidth(width).Render(text)
}

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth >= width {
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modalContent and splices it over the base content.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(strings.TrimRight(modalContent, "\n"), "\n")
	if len(modalLines) > height {
		modalLines = modalLines[:height]
	}
	modalHeight := len(modalLines)

	modalWidth := 0
	for _, line := range modalLines {
		modalWidth = max(modalWidth, lipgloss.Width(line))
	}
	if modalWidth == 0 {
		return baseContent
	}
	modalWidth = min(modalWidth, width)

	top := max(0, (height-modalHeight)/2)
	left := max(0, (width-modalWidth)/2)

	paddingStyle := lipgloss.NewStyle().Background(modalBg)
	for i, line := range modalLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > modalWidth {
			line = ansi.Cut(line, 0, modalWidth)
		}
		if lineWidth < modalWidth {
			line += paddingStyle.Render(strings.Repeat(" ", modalWidth-lineWidth))
		}
		modalLines[i] = ApplyModalBackgroundResets(line, modalBg) + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, lipgloss.Color("")), "\n")

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+modalHeight {
			lines = append(lines, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+modalWidth, width)
		lines = append(lines, leftSlice+modalLines[row-top]+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// ApplyModalBackgroundResets reapplies modal background after ANSI resets.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	bgSeq := ModalBackgroundSeq(modalBg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
