package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncLayout()
		return m, nil

	case commands.WeekLoadedMsg:
		if !msg.WeekStart.Equal(m.weekStart) {
			return m, nil
		}
		m.setEmployees(msg.Employees)
		m.board.SetShifts(msg.Shifts)
		m.loading = false
		return m, nil

	case commands.OpSettledMsg:
		return m.handleSettled(msg)

	case commands.ErrMsg:
		m.loading = false
		return m.withStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusWarn = false
		}
		return m, nil

	case commands.WeekSummaryMsg:
		m.weekSummary = msg.Summary
		m.modalType = ModalWeekSummary
		return m, nil
	}

	// Cursor blink and other input messages while editing notes
	if m.modalType == ModalShiftEditor && m.notes.Focused() {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSettled applies a finished op. The board drops the preview first,
// then the reloaded week replaces the shift list unless a later op's reload
// has already been applied.
func (m Model) handleSettled(msg commands.OpSettledMsg) (tea.Model, tea.Cmd) {
	m.board.Settle(msg.Result)
	seq := msg.Result.Op.Seq
	if msg.ReloadErr == nil && msg.WeekStart.Equal(m.weekStart) && seq >= m.settledSeq {
		m.board.SetShifts(msg.Shifts)
		m.settledSeq = seq
	}

	res := msg.Result
	if res.Err == nil && res.Op.Kind == board.OpDelete && m.editID == res.Op.ShiftID {
		m = m.closeModal()
	}

	switch {
	case res.Err != nil:
		return m.withStatus(opErrorText(res.Err), true)
	case msg.ReloadErr != nil:
		return m.withStatus(fmt.Sprintf("Error: %v", msg.ReloadErr), true)
	}
	return m, nil
}

func opErrorText(err error) string {
	switch {
	case errors.Is(err, shift.ErrShiftOverlap):
		return warningText(board.WarnSameEmployeeOverlap)
	case errors.Is(err, shift.ErrEmployeeInactive):
		return "Employee is inactive"
	case errors.Is(err, shift.ErrShiftNotFound):
		return "Shift no longer exists"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
