package board

import (
	"time"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// BeginResize starts dragging the bottom handle of a shift.
func (b *Board) BeginResize(id string, p Pointer) error {
	s, err := b.beginShiftGesture(id)
	if err != nil {
		return err
	}
	b.state = Resizing{ShiftID: id, Original: s, Origin: p}
	b.log.Log("GESTURE_START", debuglog.Fields{"kind": "resize", "shift": id})
	return nil
}

// ResizeTo publishes the preview for the current pointer. It is computed
// from the original shift and the total displacement, so repeated calls
// never drift.
func (b *Board) ResizeTo(p Pointer) {
	st, ok := b.state.(Resizing)
	if !ok {
		return
	}
	end := b.resizedEnd(st.Original, p.DY)
	b.setPreview(Preview{ShiftID: st.ShiftID, Start: st.Original.Start, End: end})
}

// EndResize validates and commits the end time under the final pointer.
func (b *Board) EndResize(p Pointer) Outcome {
	st, ok := b.state.(Resizing)
	if !ok {
		return OutcomeNone
	}
	b.state = Idle{}

	end := b.resizedEnd(st.Original, p.DY)
	out := b.commitUpdate(st.ShiftID, st.Original.Start, end, shift.Patch{End: &end})
	b.log.Log("GESTURE_END", debuglog.Fields{"kind": "resize", "shift": st.ShiftID, "outcome": out.String()})
	return out
}

// ResizeShift sets a new end time for a shift, snapped and clamped the same
// way a handle drag is.
func (b *Board) ResizeShift(id string, endMinutes int) Outcome {
	s, ok := b.Lookup(id)
	if !ok {
		return OutcomeStale
	}
	end := b.clampEnd(s, b.geo.Snap(endMinutes))
	return b.commitUpdate(id, s.Start, end, shift.Patch{End: &end})
}

func (b *Board) resizedEnd(s shift.Shift, dy float64) time.Time {
	origEnd := shift.MinutesOfDay(s.Start) + s.Duration()
	return b.clampEnd(s, b.geo.Snap(origEnd+b.geo.DeltaMinutes(dy)))
}

// clampEnd keeps the end at least one slot after the start and no later
// than closing time.
func (b *Board) clampEnd(s shift.Shift, endMinutes int) time.Time {
	startMinutes := shift.MinutesOfDay(s.Start)
	lo := startMinutes + b.geo.Config().MinutesPerSlot
	hi := max(lo, b.geo.Hours().EndMinutes)
	return shift.At(s.Start, clampInt(endMinutes, lo, hi))
}
