package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Log("KEY", debuglog.Fields{"key": msg.String(), "modal": int(m.modalType)})

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.modalType {
	case ModalShiftEditor:
		return m.handleEditorKeys(msg)
	case ModalWeekSummary:
		return m.handleSummaryKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys while the grid has focus.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.screen()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if !m.board.IsIdle() {
			m.board.Cancel()
			m.mouse.cancel()
			return m.withStatus("Cancelled", false)
		}

	// Week navigation
	case "h", "left":
		return m.changeWeek(m.weekStart.AddDate(0, 0, -7))
	case "l", "right":
		return m.changeWeek(m.weekStart.AddDate(0, 0, 7))
	case "t":
		monday, _ := dateutil.WeekRange(m.now())
		return m.changeWeek(monday)
	case "r":
		m.loading = true
		return m, commands.LoadWeek(m.store, m.weekStart)

	// Scrolling
	case "j", "down":
		m.scroll = min(s.maxScroll(), m.scroll+s.rowsPerSlot)
		m.syncLayout()
	case "k", "up":
		m.scroll = max(0, m.scroll-s.rowsPerSlot)
		m.syncLayout()
	case "pgdown", "ctrl+d":
		m.scroll = min(s.maxScroll(), m.scroll+max(1, s.bodyH/2))
		m.syncLayout()
	case "pgup", "ctrl+u":
		m.scroll = max(0, m.scroll-max(1, s.bodyH/2))
		m.syncLayout()

	case "y":
		return m, commands.CopyWeek(m.store, m.weekStart, m.clip)
	case "s":
		return m, commands.WeekSummary(m.store, m.weekStart)
	}
	return m, nil
}

// changeWeek abandons any gesture and loads another week.
func (m Model) changeWeek(weekStart time.Time) (tea.Model, tea.Cmd) {
	m.board.Cancel()
	m.mouse.cancel()
	m.weekStart = weekStart
	m.loading = true
	m.board.SetShifts(nil)
	m.syncLayout()
	return m, commands.LoadWeek(m.store, m.weekStart)
}

// handleEditorKeys handles the shift editor modal.
func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notes.Focused() {
		switch msg.String() {
		case "enter":
			m.notes.Blur()
			out := m.board.UpdateNotes(m.editID, m.notes.Value())
			var cmd tea.Cmd
			m, cmd = m.flushBoard()
			return m.afterEditorCommand(out, cmd)
		case "esc":
			m.notes.Blur()
			if s, ok := m.board.Lookup(m.editID); ok {
				m.notes.SetValue(s.Notes)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		return m.closeModal(), nil
	case "e", "enter":
		cmd := m.notes.Focus()
		return m, cmd
	case "d":
		out := m.board.Delete(m.editID)
		var cmd tea.Cmd
		m, cmd = m.flushBoard()
		return m.afterEditorCommand(out, cmd)
	}
	return m, nil
}

func (m Model) afterEditorCommand(out board.Outcome, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	var status tea.Cmd
	switch out {
	case board.OutcomeStale:
		m = m.closeModal()
		m, status = m.withStatus("Shift no longer exists", true)
	case board.OutcomeBusy:
		m, status = m.withStatus("That shift is still saving", true)
	}
	return m, tea.Batch(cmd, status)
}

// handleSummaryKeys handles the week summary modal.
func (m Model) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "s":
		return m.closeModal(), nil
	case "y":
		return m, commands.CopyWeek(m.store, m.weekStart, m.clip)
	}
	return m, nil
}

// openEditor shows the editor for a shift that was clicked.
func (m Model) openEditor(id string) Model {
	s, ok := m.board.Lookup(id)
	if !ok {
		return m
	}
	m.modalType = ModalShiftEditor
	m.editID = id
	m.notes.SetValue(s.Notes)
	m.notes.Blur()
	return m
}

func (m Model) closeModal() Model {
	m.modalType = ModalNone
	m.editID = ""
	m.weekSummary = nil
	m.notes.Blur()
	return m
}
