package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// boardEvents collects what the board emits during one Update so it can be
// turned into commands afterwards. It is the board's Dispatcher and Notifier.
type boardEvents struct {
	ops      []board.Op
	warnings []string
	edit     string
}

func (e *boardEvents) Dispatch(op board.Op) {
	e.ops = append(e.ops, op)
}

func (e *boardEvents) Warn(key string) {
	e.warnings = append(e.warnings, key)
}

func (e *boardEvents) OpenEditor(shiftID string) {
	e.edit = shiftID
}

func (e *boardEvents) reset() {
	e.ops = nil
	e.warnings = nil
	e.edit = ""
}

// warningText maps board warning keys to status line text.
func warningText(key string) string {
	switch key {
	case board.WarnSameEmployeeOverlap:
		return "Overlaps another shift of the same employee"
	default:
		return key
	}
}

// flushBoard turns pending board events into commands, status and modals.
func (m Model) flushBoard() (Model, tea.Cmd) {
	ev := m.events
	defer ev.reset()

	var cmds []tea.Cmd
	for _, op := range ev.ops {
		cmds = append(cmds, commands.Persist(m.board, m.store, op, m.weekStart))
	}
	for _, key := range ev.warnings {
		cmds = append(cmds, m.setStatus(warningText(key), true))
	}
	if ev.edit != "" {
		m = m.openEditor(ev.edit)
	}
	return m, tea.Batch(cmds...)
}
