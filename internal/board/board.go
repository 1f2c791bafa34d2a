// Package board is the scheduling core behind the week grid: it owns the
// active gesture, turns pointer positions into snapped and clamped shift
// times, validates them against the roster and issues persistence commands.
//
// The board never modifies the shift list it is given. The list belongs to
// the caller and is replaced wholesale with SetShifts after every reload.
package board

import (
	"errors"
	"time"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
)

// Board errors.
var (
	ErrGestureActive = errors.New("another gesture is in progress")
	ErrShiftBusy     = errors.New("shift has a pending change")
	ErrNotDraggable  = errors.New("target cannot be dragged")
)

const (
	// DefaultShiftMinutes is the length of a shift created by a drop.
	DefaultShiftMinutes = 240
	// DefaultDragThreshold separates a click from a drag, in pixels.
	DefaultDragThreshold = 5
)

// Notifier receives user-facing signals.
type Notifier interface {
	// Warn is called with a message key when a commit is rejected.
	Warn(key string)
	// OpenEditor is called when a shift is clicked rather than dragged.
	OpenEditor(shiftID string)
}

type nopNotifier struct{}

func (nopNotifier) Warn(string)       {}
func (nopNotifier) OpenEditor(string) {}

// Board is the scheduling core. It is not safe for concurrent use: all
// methods except Execute must run on the UI event loop.
type Board struct {
	geo        *grid.Geometry
	layout     Layout
	gateway    shift.Gateway
	dispatcher Dispatcher
	notify     Notifier
	log        *debuglog.Logger

	defaultMinutes int
	dragThreshold  float64

	shifts    []shift.Shift
	employees map[string]shift.Employee

	state    GestureState
	preview  *Preview
	pending  map[string]Preview
	inflight map[string]bool
	seq      uint64
}

// Option configures a Board.
type Option func(*Board)

// WithDispatcher runs ops through d. Without one, ops execute inline.
func WithDispatcher(d Dispatcher) Option {
	return func(b *Board) { b.dispatcher = d }
}

// WithNotifier sets the warning and editor channel.
func WithNotifier(n Notifier) Option {
	return func(b *Board) {
		if n != nil {
			b.notify = n
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *debuglog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithLayout sets the initial screen layout.
func WithLayout(l Layout) Option {
	return func(b *Board) { b.layout = l }
}

// WithDefaultShiftMinutes sets the length of dropped shifts.
func WithDefaultShiftMinutes(m int) Option {
	return func(b *Board) {
		if m > 0 {
			b.defaultMinutes = m
		}
	}
}

// WithDragThreshold sets the click/drag threshold in pixels.
func WithDragThreshold(px float64) Option {
	return func(b *Board) {
		if px >= 0 {
			b.dragThreshold = px
		}
	}
}

// New creates a Board over the given geometry and gateway.
func New(geo *grid.Geometry, gateway shift.Gateway, opts ...Option) *Board {
	b := &Board{
		geo:            geo,
		gateway:        gateway,
		notify:         nopNotifier{},
		log:            debuglog.Disabled(),
		defaultMinutes: DefaultShiftMinutes,
		dragThreshold:  DefaultDragThreshold,
		employees:      make(map[string]shift.Employee),
		state:          Idle{},
		pending:        make(map[string]Preview),
		inflight:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Geometry returns the grid geometry.
func (b *Board) Geometry() *grid.Geometry {
	return b.geo
}

// DefaultMinutes returns the length of a shift created by a drop.
func (b *Board) DefaultMinutes() int {
	return b.defaultMinutes
}

// Layout returns the current screen layout.
func (b *Board) Layout() Layout {
	return b.layout
}

// SetLayout updates the screen layout, e.g. after a resize or week change.
func (b *Board) SetLayout(l Layout) {
	b.layout = l
}

// SetShifts replaces the authoritative shift snapshot.
func (b *Board) SetShifts(shifts []*shift.Shift) {
	b.shifts = make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s != nil {
			b.shifts = append(b.shifts, *s)
		}
	}
}

// SetEmployees replaces the roster snapshot.
func (b *Board) SetEmployees(employees []*shift.Employee) {
	b.employees = make(map[string]shift.Employee, len(employees))
	for _, e := range employees {
		if e != nil {
			b.employees[e.ID] = *e
		}
	}
}

// Shifts returns a copy of the authoritative snapshot.
func (b *Board) Shifts() []shift.Shift {
	out := make([]shift.Shift, len(b.shifts))
	copy(out, b.shifts)
	return out
}

// Lookup returns the authoritative shift with the given id.
func (b *Board) Lookup(id string) (shift.Shift, bool) {
	for _, s := range b.shifts {
		if s.ID == id {
			return s, true
		}
	}
	return shift.Shift{}, false
}

// State returns the active gesture.
func (b *Board) State() GestureState {
	return b.state
}

// IsIdle reports whether no gesture is active.
func (b *Board) IsIdle() bool {
	_, ok := b.state.(Idle)
	return ok
}

// Busy reports whether the shift has a command that has not settled.
func (b *Board) Busy(id string) bool {
	return b.inflight[id]
}

// Start begins a gesture on the given target. Only possible from Idle.
func (b *Board) Start(g GestureStart) error {
	switch g.Target.Kind {
	case TargetEmployee:
		return b.BeginCreate(g.Target.ID)
	case TargetResizeHandle:
		return b.BeginResize(g.Target.ID, g.Pointer)
	case TargetShiftBody:
		return b.BeginMove(g.Target.ID, g.Pointer)
	default:
		return ErrNotDraggable
	}
}

// Move feeds a pointer move to the active gesture.
func (b *Board) Move(p Pointer) {
	switch b.state.(type) {
	case Creating:
		b.HoverCreate(p)
	case Resizing:
		b.ResizeTo(p)
	case Moving:
		b.MoveTo(p)
	}
}

// End finishes the active gesture at p.
func (b *Board) End(p Pointer) Outcome {
	switch b.state.(type) {
	case Creating:
		return b.DropCreate(p)
	case Resizing:
		return b.EndResize(p)
	case Moving:
		return b.EndMove(p)
	default:
		return OutcomeNone
	}
}

// Cancel abandons the active gesture without committing anything.
func (b *Board) Cancel() {
	if b.IsIdle() {
		return
	}
	b.log.Log("GESTURE_CANCEL", debuglog.Fields{"state": b.state.Name()})
	b.state = Idle{}
	b.discardPreview()
}

func (b *Board) beginShiftGesture(id string) (shift.Shift, error) {
	if !b.IsIdle() {
		return shift.Shift{}, ErrGestureActive
	}
	if b.Busy(id) {
		return shift.Shift{}, ErrShiftBusy
	}
	s, ok := b.Lookup(id)
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

// commitUpdate validates a new interval for an existing shift and
// dispatches the update. Shared by resize, move and their direct forms.
func (b *Board) commitUpdate(id string, start, end time.Time, patch shift.Patch) Outcome {
	cur, ok := b.Lookup(id)
	if !ok {
		b.discardPreview()
		b.log.Log("COMMIT_STALE", debuglog.Fields{"shift": id})
		return OutcomeStale
	}
	if b.Busy(id) {
		b.discardPreview()
		return OutcomeBusy
	}
	if start.Equal(cur.Start) && end.Equal(cur.End) {
		b.discardPreview()
		return OutcomeUnchanged
	}
	if c := FindConflict(b.shifts, cur.EmployeeID, start.Format(shift.DayKeyLayout), start, end, cur.ID); c != nil {
		b.discardPreview()
		b.log.Log("COMMIT_CONFLICT", debuglog.Fields{"shift": id, "with": c.ID})
		b.notify.Warn(WarnSameEmployeeOverlap)
		return OutcomeConflict
	}

	b.setPreview(Preview{ShiftID: id, Start: start, End: end})
	b.dispatch(Op{Kind: OpUpdate, ShiftID: id, Patch: patch})
	return OutcomeDispatched
}

// Delete removes a shift through the gateway.
func (b *Board) Delete(id string) Outcome {
	if _, ok := b.Lookup(id); !ok {
		return OutcomeStale
	}
	if b.Busy(id) {
		return OutcomeBusy
	}
	b.dispatch(Op{Kind: OpDelete, ShiftID: id})
	return OutcomeDispatched
}

// UpdateNotes replaces a shift's notes.
func (b *Board) UpdateNotes(id, notes string) Outcome {
	cur, ok := b.Lookup(id)
	if !ok {
		return OutcomeStale
	}
	if b.Busy(id) {
		return OutcomeBusy
	}
	if cur.Notes == notes {
		return OutcomeUnchanged
	}
	b.dispatch(Op{Kind: OpUpdate, ShiftID: id, Patch: shift.Patch{Notes: &notes}})
	return OutcomeDispatched
}

// clampInterval places a block of dur minutes starting at startMinutes on
// date inside business hours. Overflow past close shifts the whole block
// earlier; a block longer than the window is cut to the window.
func (b *Board) clampInterval(date time.Time, startMinutes, dur int) (time.Time, time.Time) {
	hours := b.geo.Hours()
	step := b.geo.Config().MinutesPerSlot

	dur = max(step, min(dur, hours.Len()))
	startMinutes = max(startMinutes, hours.StartMinutes)
	if startMinutes+dur > hours.EndMinutes {
		startMinutes = hours.EndMinutes - dur
	}
	return shift.At(date, startMinutes), shift.At(date, startMinutes+dur)
}
