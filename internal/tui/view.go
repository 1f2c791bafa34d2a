package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/summary"
	"github.com/javiermolinar/rota/internal/tui/view"
)

const helpText = "drag staff onto a day · drag a shift to move · drag its last row to resize · " +
	"h/l week  t today  s summary  y copy  q quit"

// View renders the model.
func (m Model) View() string {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
		ModalBg:          m.styles.ModalBgColor,
	}
	if m.width == 0 || m.height == 0 {
		return view.Render(state)
	}

	s := m.screen()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderDayHeader(s))
	lines = append(lines, m.renderBody(s)...)
	lines = append(lines, m.renderFooter())

	state.BaseContent = view.PadLinesWithBackground(strings.Join(lines, "\n"), m.width, m.height, m.styles.colorBg)
	if m.modalType != ModalNone {
		state.ShowModal = true
		state.ModalContent = m.renderModal()
	}
	return view.Render(state)
}

func (m Model) renderTitle() string {
	left := m.styles.TitleStyle.Render(" rota ") +
		m.styles.MetaStyle.Render(" "+view.WeekTitle(m.weekStart, m.screen().days))

	shifts := m.board.Shifts()
	total := 0
	for i := range shifts {
		total += shifts[i].Duration()
	}
	meta := fmt.Sprintf("%d shifts · %s ", len(shifts), summary.FormatDuration(total))
	if m.loading {
		meta = "loading… "
	}
	right := m.styles.MetaStyle.Render(meta)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "")
	}
	return left + m.styles.MetaStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) renderDayHeader(s screen) string {
	labels, today := view.HeaderLabels(m.weekStart, s.days, m.now())

	var b strings.Builder
	b.WriteString(view.Cell(" Staff", rosterWidth, m.styles.RosterHeaderStyle))
	b.WriteString(view.Cell("", labelWidth, m.styles.TimeColumnStyle))
	for d, label := range labels {
		style := m.styles.DayHeaderStyle
		if d == today {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(view.Cell(label, s.colW, style))
	}
	return b.String()
}

// ghost is the shift a drop at the hovered cell would create.
type ghost struct {
	day    int
	top    int
	height int
	name   string
	times  string
}

func (m Model) ghost() *ghost {
	st, ok := m.board.State().(board.Creating)
	if !ok || st.Hover == nil {
		return nil
	}
	geo := m.board.Geometry()
	start := geo.SlotMinutes(st.Hover.Slot)
	end := min(start+m.board.DefaultMinutes(), geo.Hours().EndMinutes)
	top := int(geo.TimeToOffset(start))
	return &ghost{
		day:    st.Hover.Day,
		top:    top,
		height: max(1, int(geo.TimeToOffset(end))-top),
		name:   m.employeeName(st.EmployeeID),
		times:  shift.MinutesToTime(start) + "-" + shift.MinutesToTime(end),
	}
}

func (g *ghost) covers(day, row int) bool {
	return g != nil && g.day == day && row >= g.top && row < g.top+g.height
}

func (g *ghost) line(row int) string {
	switch {
	case g.height == 1:
		return " + " + g.name + " " + g.times
	case row == g.top:
		return " + " + g.name
	case row == g.top+1:
		return " " + g.times
	default:
		return ""
	}
}

func (m Model) renderBody(s screen) []string {
	blocks := m.blocks(s)
	chips := m.activeEmployees()
	gh := m.ghost()

	dragging := ""
	if st, ok := m.board.State().(board.Creating); ok {
		dragging = st.EmployeeID
	}

	lines := make([]string, s.bodyH)
	for i := range lines {
		row := i + s.scroll

		var b strings.Builder
		b.WriteString(m.renderRosterCell(i, chips, dragging))
		b.WriteString(m.renderLabelCell(s, row))
		for d := 0; d < s.days; d++ {
			switch {
			case row >= s.totalRows:
				b.WriteString(view.Cell("", s.colW, m.styles.EmptyCellStyle))
			case gh.covers(d, row):
				b.WriteString(view.Cell(gh.line(row), s.colW, m.styles.GhostStyle))
			default:
				b.WriteString(m.renderDayRow(s, row, blocks[d]))
			}
		}
		lines[i] = b.String()
	}
	return lines
}

func (m Model) renderRosterCell(i int, chips []*shift.Employee, dragging string) string {
	if i < len(chips) {
		e := chips[i]
		return view.Cell(" ● "+e.Name, rosterWidth, m.styles.ChipStyle(m.staffIndex[e.ID], e.ID == dragging))
	}
	if i == 0 && !m.loading {
		return view.Cell(" no active staff", rosterWidth, m.styles.RosterHeaderStyle)
	}
	return view.Cell("", rosterWidth, m.styles.RosterStyle)
}

func (m Model) renderLabelCell(s screen, row int) string {
	if row >= s.totalRows || row%s.rowsPerSlot != 0 {
		return view.Cell("", labelWidth, m.styles.TimeColumnStyle)
	}
	minutes := m.board.Geometry().SlotMinutes(row / s.rowsPerSlot)
	return view.Cell(shift.MinutesToTime(minutes), labelWidth, m.styles.TimeColumnStyle)
}

// renderDayRow renders one row of a day column, lane by lane.
func (m Model) renderDayRow(s screen, row int, blocks []block) string {
	lanes := 1
	if len(blocks) > 0 {
		lanes = blocks[0].lanes
	}

	var b strings.Builder
	for lane := 0; lane < lanes; lane++ {
		_, w := laneSpan(s.colW, lane, lanes)
		b.WriteString(m.renderLaneCell(s, row, lane, w, blocks))
	}
	return b.String()
}

func (m Model) renderLaneCell(s screen, row, lane, w int, blocks []block) string {
	for _, blk := range blocks {
		if blk.lane != lane || !blk.contains(row) {
			continue
		}
		idx := m.staffIndex[blk.shift.EmployeeID]
		style := m.styles.BlockStyle(idx, blk.busy)
		switch {
		case blk.preview:
			style = m.styles.PreviewStyle
		case blk.handleRow(row):
			style = m.styles.HandleStyle(idx)
		}
		return view.Cell(blockLine(blk, row, w, m.employeeName(blk.shift.EmployeeID)), w, style)
	}

	if row%s.rowsPerSlot == 0 && m.board.Geometry().SlotMinutes(row/s.rowsPerSlot)%60 == 0 {
		return view.Cell(strings.Repeat("┈", w), w, m.styles.HourCellStyle)
	}
	return view.Cell("", w, m.styles.EmptyCellStyle)
}

// blockLine is the text of one row of a shift block: name, times, notes,
// and the resize handle on the last row.
func blockLine(b block, row, w int, name string) string {
	times := b.shift.StartClock() + "-" + b.shift.EndClock()
	switch {
	case b.height == 1:
		return " " + name + " " + times
	case b.handleRow(row):
		if b.height == 2 {
			return " " + times
		}
		return strings.Repeat("╌", w)
	}
	switch row - b.top {
	case 0:
		return " " + name
	case 1:
		return " " + times
	case 2:
		return " " + b.shift.Notes
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	style := m.styles.StatusStyle
	if m.statusWarn {
		style = m.styles.WarningStyle
	}
	if status == "" {
		status = gestureHint(m.board.State())
	}
	return view.RenderFooter(view.FooterViewState{
		InnerW:      m.width,
		StatusLine:  " " + status,
		HelpLine:    " " + helpText,
		StatusStyle: style,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	})
}

// gestureHint describes the gesture in progress.
func gestureHint(st board.GestureState) string {
	switch st := st.(type) {
	case board.Resizing:
		return "Resizing: release to save, esc to cancel"
	case board.Moving:
		if st.DidDrag {
			return "Moving: release to save, esc to cancel"
		}
	}
	return ""
}
