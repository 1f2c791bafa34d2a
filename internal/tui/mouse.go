package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// mouseSource adapts Bubble Tea mouse messages to board gestures. It
// remembers where the press happened so moves and releases carry deltas.
type mouseSource struct {
	onStart func(board.GestureStart) error
	onMove  func(board.Pointer)
	onEnd   func(board.Pointer) board.Outcome

	originX, originY int
	active           bool
}

var _ board.InputEventSource = (*mouseSource)(nil)

func newMouseSource() *mouseSource {
	return &mouseSource{}
}

func (s *mouseSource) OnGestureStart(f func(board.GestureStart) error) { s.onStart = f }
func (s *mouseSource) OnGestureMove(f func(board.Pointer))             { s.onMove = f }
func (s *mouseSource) OnGestureEnd(f func(board.Pointer) board.Outcome) {
	s.onEnd = f
}

// withDelta fills the displacement from the press. Deltas use raw cell
// positions so they stay meaningful when the pointer leaves the grid.
func (s *mouseSource) withDelta(p board.Pointer, x, y int) board.Pointer {
	p.DX = float64(x - s.originX)
	p.DY = float64(y - s.originY)
	return p
}

func (s *mouseSource) press(t board.Target, p board.Pointer, x, y int) error {
	if s.onStart == nil {
		return nil
	}
	s.originX, s.originY = x, y
	if err := s.onStart(board.GestureStart{Target: t, Pointer: p}); err != nil {
		s.active = false
		return err
	}
	s.active = true
	return nil
}

func (s *mouseSource) motion(p board.Pointer, x, y int) {
	if !s.active || s.onMove == nil {
		return
	}
	s.onMove(s.withDelta(p, x, y))
}

func (s *mouseSource) release(p board.Pointer, x, y int) board.Outcome {
	if !s.active || s.onEnd == nil {
		return board.OutcomeNone
	}
	s.active = false
	return s.onEnd(s.withDelta(p, x, y))
}

// cancel forgets the press without ending the gesture; the caller cancels
// the board.
func (s *mouseSource) cancel() {
	s.active = false
}

// handleMouseMsg routes mouse input to the board, or scrolls the grid.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	m.log.Log("MOUSE", debuglog.Fields{
		"x":      msg.X,
		"y":      msg.Y,
		"action": msg.Action.String(),
		"button": msg.Button.String(),
	})

	if m.modalType != ModalNone {
		return m, nil
	}

	s := m.screen()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll = max(0, m.scroll-s.rowsPerSlot)
		m.syncLayout()
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll = min(s.maxScroll(), m.scroll+s.rowsPerSlot)
		m.syncLayout()
		return m, nil
	}

	p := s.pointer(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mouse.active || m.loading {
			return m, nil
		}
		target, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		// Blocks one row tall have no handle row; a modified press resizes.
		if target.Kind == board.TargetShiftBody && (msg.Alt || msg.Shift) {
			target.Kind = board.TargetResizeHandle
		}
		if err := m.mouse.press(target, p, msg.X, msg.Y); err != nil {
			return m.withStatus(gestureErrorText(err), true)
		}
		if target.Kind == board.TargetEmployee {
			return m.withStatus("Placing "+m.employeeName(target.ID)+": release over a day", false)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.mouse.motion(p, msg.X, msg.Y)
		return m, nil

	case tea.MouseActionRelease:
		if !m.mouse.active {
			return m, nil
		}
		out := m.mouse.release(p, msg.X, msg.Y)
		var cmd tea.Cmd
		m, cmd = m.flushBoard()
		if text := outcomeText(out); text != "" {
			var status tea.Cmd
			m, status = m.withStatus(text, false)
			return m, tea.Batch(cmd, status)
		}
		if out != board.OutcomeConflict && m.statusMsg != "" && !m.statusWarn {
			m.statusMsg = ""
		}
		return m, cmd
	}
	return m, nil
}

func gestureErrorText(err error) string {
	switch {
	case errors.Is(err, board.ErrShiftBusy):
		return "That shift is still saving"
	case errors.Is(err, shift.ErrEmployeeInactive):
		return "Employee is inactive"
	case errors.Is(err, shift.ErrShiftNotFound):
		return "Shift no longer exists"
	case errors.Is(err, shift.ErrEmployeeNotFound):
		return "Unknown employee"
	default:
		return err.Error()
	}
}

// outcomeText is the status line for outcomes the user should hear about.
// Conflicts are reported through the board's warning instead.
func outcomeText(out board.Outcome) string {
	switch out {
	case board.OutcomeDiscarded:
		return "Dropped outside the grid"
	case board.OutcomeRejected:
		return "Cannot place a shift there"
	case board.OutcomeBusy:
		return "That shift is still saving"
	default:
		return ""
	}
}
