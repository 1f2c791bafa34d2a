// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/summary"
)

// Source is the read side of storage used by the TUI.
type Source interface {
	ListShiftsByDateRange(ctx context.Context, start, end time.Time) ([]*shift.Shift, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]*shift.Employee, error)
}

// Executor runs a board op against the gateway.
type Executor interface {
	Execute(ctx context.Context, op board.Op) board.Result
}

// WeekLoadedMsg is sent when week data is loaded.
type WeekLoadedMsg struct {
	WeekStart time.Time
	Shifts    []*shift.Shift
	Employees []*shift.Employee
}

// OpSettledMsg is sent when a persistence op finishes. Shifts is the week
// reloaded after the op; it is nil if the reload failed.
type OpSettledMsg struct {
	Result    board.Result
	WeekStart time.Time
	Shifts    []*shift.Shift
	ReloadErr error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WeekSummaryMsg is sent when week summary data is ready.
type WeekSummaryMsg struct {
	Summary *summary.WeekSummary
}

func weekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// LoadWeek loads the shifts of the week and the full roster.
func LoadWeek(src Source, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		shifts, err := src.ListShiftsByDateRange(ctx, weekStart, weekEnd(weekStart))
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading shifts: %w", err)}
		}
		employees, err := src.ListEmployees(ctx, false)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading employees: %w", err)}
		}

		return WeekLoadedMsg{WeekStart: weekStart, Shifts: shifts, Employees: employees}
	}
}

// Persist executes op off the event loop and reloads the week so the
// result can be settled and the shift list replaced in one message.
func Persist(exec Executor, src Source, op board.Op, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		res := exec.Execute(ctx, op)

		shifts, err := src.ListShiftsByDateRange(ctx, weekStart, weekEnd(weekStart))
		if err != nil {
			return OpSettledMsg{Result: res, WeekStart: weekStart, ReloadErr: fmt.Errorf("reloading shifts: %w", err)}
		}
		return OpSettledMsg{Result: res, WeekStart: weekStart, Shifts: shifts}
	}
}

// WeekSummary builds a summary for the week.
func WeekSummary(src Source, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		s, err := summary.BuildWeekSummary(context.Background(), src, weekStart)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekSummaryMsg{Summary: s}
	}
}

// CopyWeek writes the week roster as plain text with write.
func CopyWeek(src Source, weekStart time.Time, write func(string) error) tea.Cmd {
	return func() tea.Msg {
		s, err := summary.BuildWeekSummary(context.Background(), src, weekStart)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := write(s.PlainText()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %d shifts to clipboard", s.Week.Len())}
	}
}

// Status returns a command that shows msg in the status line.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
