package board

import (
	"time"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// BeginCreate starts dragging an employee chip. Only active employees can
// be dragged.
func (b *Board) BeginCreate(employeeID string) error {
	if !b.IsIdle() {
		return ErrGestureActive
	}
	if err := b.checkEmployee(employeeID); err != nil {
		return err
	}
	b.state = Creating{EmployeeID: employeeID}
	b.log.Log("GESTURE_START", debuglog.Fields{"kind": "create", "employee": employeeID})
	return nil
}

// HoverCreate records the cell under the pointer for highlighting. It does
// not create anything.
func (b *Board) HoverCreate(p Pointer) {
	st, ok := b.state.(Creating)
	if !ok {
		return
	}
	if cell, inside := b.CellAt(p); inside {
		st.Hover = &cell
	} else {
		st.Hover = nil
	}
	b.state = st
}

// DropCreate finishes an employee drag. Dropping outside the day columns
// discards the gesture.
func (b *Board) DropCreate(p Pointer) Outcome {
	st, ok := b.state.(Creating)
	if !ok {
		return OutcomeNone
	}
	b.state = Idle{}

	cell, inside := b.CellAt(p)
	if !inside {
		b.log.Log("GESTURE_END", debuglog.Fields{"kind": "create", "outcome": OutcomeDiscarded.String()})
		return OutcomeDiscarded
	}
	out := b.DropEmployee(st.EmployeeID, b.layout.Date(cell.Day), cell.Slot)
	b.log.Log("GESTURE_END", debuglog.Fields{"kind": "create", "outcome": out.String(), "day": cell.Day, "slot": cell.Slot})
	return out
}

// DropEmployee creates a shift for employeeID starting at the given slot of
// date. The shift lasts the default length, cut short at closing time.
func (b *Board) DropEmployee(employeeID string, date time.Time, slot int) Outcome {
	if err := b.checkEmployee(employeeID); err != nil {
		return OutcomeRejected
	}
	if slot < 0 || slot >= b.geo.SlotCount() {
		return OutcomeRejected
	}

	startMinutes := b.geo.SlotMinutes(slot)
	remaining := b.geo.Hours().EndMinutes - startMinutes
	start := shift.At(date, startMinutes)
	end := start.Add(time.Duration(min(b.defaultMinutes, remaining)) * time.Minute)

	if c := FindConflict(b.shifts, employeeID, start.Format(shift.DayKeyLayout), start, end, ""); c != nil {
		b.log.Log("COMMIT_CONFLICT", debuglog.Fields{"employee": employeeID, "with": c.ID})
		b.notify.Warn(WarnSameEmployeeOverlap)
		return OutcomeConflict
	}

	b.dispatch(Op{Kind: OpAdd, Add: shift.NewShift{EmployeeID: employeeID, Start: start, End: end}})
	return OutcomeDispatched
}

// PlaceShift creates a shift with an explicit interval. The interval must
// already satisfy the shift invariants for the business hours.
func (b *Board) PlaceShift(employeeID string, start, end time.Time) Outcome {
	if err := b.checkEmployee(employeeID); err != nil {
		return OutcomeRejected
	}
	if err := shift.Validate(start, end, b.geo.Hours()); err != nil {
		return OutcomeRejected
	}
	if c := FindConflict(b.shifts, employeeID, start.Format(shift.DayKeyLayout), start, end, ""); c != nil {
		b.log.Log("COMMIT_CONFLICT", debuglog.Fields{"employee": employeeID, "with": c.ID})
		b.notify.Warn(WarnSameEmployeeOverlap)
		return OutcomeConflict
	}

	b.dispatch(Op{Kind: OpAdd, Add: shift.NewShift{EmployeeID: employeeID, Start: start, End: end}})
	return OutcomeDispatched
}

// CellAt returns the day/slot cell under p and whether p is over a day column.
func (b *Board) CellAt(p Pointer) (Cell, bool) {
	l := b.layout
	left := l.Left + l.LabelWidth
	if p.X < left || p.X >= l.Left+l.Width || p.Y < l.Top || p.Y >= l.Top+b.geo.Height() {
		return Cell{}, false
	}
	return Cell{Day: l.dayAt(p.X), Slot: b.geo.SlotAt(p.Y - l.Top)}, true
}

// InGrid reports whether p is inside the grid, label column included.
func (b *Board) InGrid(p Pointer) bool {
	l := b.layout
	return p.X >= l.Left && p.X < l.Left+l.Width && p.Y >= l.Top && p.Y < l.Top+b.geo.Height()
}

func (b *Board) checkEmployee(id string) error {
	e, ok := b.employees[id]
	if !ok {
		return shift.ErrEmployeeNotFound
	}
	if !e.IsActive() {
		return shift.ErrEmployeeInactive
	}
	return nil
}
