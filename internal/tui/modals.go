package tui

import (
	"github.com/javiermolinar/rota/internal/summary"
	"github.com/javiermolinar/rota/internal/tui/view"
)

// renderModal renders the active modal.
func (m Model) renderModal() string {
	styles := m.styles.modalStyles()

	switch m.modalType {
	case ModalShiftEditor:
		s, ok := m.board.Lookup(m.editID)
		if !ok {
			return ""
		}
		detail := view.ShiftDetail{
			Employee: m.employeeName(s.EmployeeID),
			Day:      s.Start.Format("Monday 02 Jan 2006"),
			Time:     s.StartClock() + "-" + s.EndClock(),
			Duration: summary.FormatDuration(s.Duration()),
			Notes:    m.notes.View(),
			Editing:  m.notes.Focused(),
			Pending:  m.board.Busy(s.ID),
		}
		body := view.RenderShiftDetail(detail, view.ShiftDetailStyles{
			Body:         m.styles.ModalBodyStyle,
			Label:        m.styles.ModalLabelStyle,
			Input:        m.styles.ModalInputStyle,
			InputFocused: m.styles.ModalInputFocusedStyle,
			Hint:         m.styles.ModalMetaStyle,
		})
		var buttons string
		if detail.Editing {
			buttons = view.RenderModalButtons(styles, "[enter] save", "[esc] cancel")
		} else {
			buttons = view.RenderModalButtons(styles, "[e] edit notes", "[d] delete", "[esc] close")
		}
		return view.RenderModalFrame("Shift", body, buttons, styles)

	case ModalWeekSummary:
		title := "Week summary"
		if m.weekSummary != nil {
			title = "Week of " + m.weekSummary.Start.Format("02 Jan 2006")
		}
		body := view.RenderWeekSummary(m.weekSummary, view.WeekSummaryStyles{
			Body:  m.styles.ModalBodyStyle,
			Muted: m.styles.ModalMetaStyle,
			Table: view.TableViewState{
				HeaderStyle: m.styles.ModalTableHeaderStyle,
				CellStyle:   m.styles.ModalBodyStyle,
				TotalStyle:  m.styles.ModalTableHeaderStyle,
				BorderStyle: m.styles.ModalTableBorderStyle,
			},
		})
		buttons := view.RenderModalButtons(styles, "[y] copy", "[esc] close")
		return view.RenderModalFrame(title, body, buttons, styles)
	}
	return ""
}
