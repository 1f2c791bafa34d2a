package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
)

// session is a board loaded with the weeks a command touches. Commands go
// through it so the CLI validates, snaps and clamps exactly like the TUI.
// Ops execute inline and their results are kept for the caller.
type session struct {
	board    *board.Board
	results  []board.Result
	warnings []string
}

func (s *session) Warn(key string)     { s.warnings = append(s.warnings, key) }
func (s *session) OpenEditor(_ string) {}

// openSession loads the roster and the shifts of every week containing one
// of dates.
func (a *App) openSession(ctx context.Context, dates ...time.Time) (*session, error) {
	store, err := a.storage()
	if err != nil {
		return nil, err
	}

	s := &session{}
	geo := grid.New(grid.Config{MinutesPerSlot: a.config.Grid.MinutesPerSlot}, a.config.TimeRange())
	s.board = board.New(geo, store,
		board.WithNotifier(s),
		board.WithLogger(a.logger()),
		board.WithDefaultShiftMinutes(a.config.Grid.DefaultShiftMinutes),
		board.WithDispatcher(board.DispatchFunc(func(op board.Op) {
			res := s.board.Execute(ctx, op)
			s.board.Settle(res)
			s.results = append(s.results, res)
		})),
	)

	var shifts []*shift.Shift
	seen := make(map[time.Time]bool)
	for _, d := range dates {
		monday, sunday := dateutil.WeekRange(d)
		if seen[monday] {
			continue
		}
		seen[monday] = true
		week, err := store.ListShiftsByDateRange(ctx, monday, sunday)
		if err != nil {
			return nil, fmt.Errorf("loading shifts: %w", err)
		}
		shifts = append(shifts, week...)
	}

	employees, err := store.ListEmployees(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	s.board.SetShifts(shifts)
	s.board.SetEmployees(employees)
	return s, nil
}

// commit maps the outcome of a board command to the settled result. A nil
// result with a nil error means nothing changed.
func (s *session) commit(out board.Outcome) (*board.Result, error) {
	switch out {
	case board.OutcomeDispatched:
		if len(s.results) == 0 {
			return nil, fmt.Errorf("no result for dispatched change")
		}
		res := s.results[len(s.results)-1]
		if res.Err != nil {
			return nil, res.Err
		}
		return &res, nil
	case board.OutcomeUnchanged:
		return nil, nil
	case board.OutcomeConflict:
		return nil, shift.ErrShiftOverlap
	case board.OutcomeStale:
		return nil, shift.ErrShiftNotFound
	case board.OutcomeRejected:
		return nil, shift.ErrOutsideHours
	default:
		return nil, fmt.Errorf("unexpected outcome: %s", out)
	}
}
