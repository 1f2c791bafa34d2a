package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/tui/theme"
	"github.com/javiermolinar/rota/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time label column
	TimeColumnStyle lipgloss.Style

	// Empty grid cells; the hour variant marks full hours
	EmptyCellStyle lipgloss.Style
	HourCellStyle  lipgloss.Style

	// Roster column
	RosterStyle       lipgloss.Style
	RosterHeaderStyle lipgloss.Style

	// Drag feedback
	PreviewStyle lipgloss.Style // shift being resized or moved
	GhostStyle   lipgloss.Style // shift that a drop would create

	// Footer
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputFocusedStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalTableHeaderStyle  lipgloss.Style
	ModalTableBorderStyle  lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{palette: palette}

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.MetaStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(palette.Today).
		Underline(true)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.HourCellStyle = s.EmptyCellStyle.
		Foreground(s.colorBgSelection)

	s.RosterStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.RosterHeaderStyle = s.RosterStyle.
		Foreground(s.colorFgMuted).
		Bold(true)

	s.PreviewStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.GhostStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Italic(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 2).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Background(modal.Bg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Bold(true).
		Background(modal.Bg)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(44)

	s.ModalInputFocusedStyle = s.ModalInputStyle.
		BorderForeground(modal.Highlight).
		Background(modal.Panel)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 1)

	s.ModalButtonActiveStyle = s.ModalButtonStyle.
		Background(modal.Highlight).
		Foreground(modal.ReverseText)

	s.ModalTableHeaderStyle = s.ModalBodyStyle.Bold(true)
	s.ModalTableBorderStyle = lipgloss.NewStyle().
		Foreground(modal.Border).
		Background(modal.Bg)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	return s
}

// ChipStyle returns the roster chip style of the i-th employee.
func (s *Styles) ChipStyle(i int, dragging bool) lipgloss.Style {
	c := s.palette.StaffAt(i)
	style := lipgloss.NewStyle().
		Foreground(c.Base).
		Background(s.colorBgHighlight)
	if dragging {
		style = style.Background(s.colorBgSelection).Bold(true)
	}
	return style
}

// BlockStyle returns the shift block style of the i-th employee. Blocks
// with an unsettled write use the muted shade.
func (s *Styles) BlockStyle(i int, busy bool) lipgloss.Style {
	c := s.palette.StaffAt(i)
	bg := c.Block
	if busy {
		bg = c.Busy
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(c.Text)
}

// HandleStyle returns the style of a block's resize handle row.
func (s *Styles) HandleStyle(i int) lipgloss.Style {
	c := s.palette.StaffAt(i)
	return lipgloss.NewStyle().
		Background(c.Handle).
		Foreground(c.Base)
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}
}
