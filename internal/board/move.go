package board

import (
	"math"
	"time"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// BeginMove starts dragging the body of a shift. The row grabbed within the
// block is remembered so the block does not jump under the pointer.
func (b *Board) BeginMove(id string, p Pointer) error {
	s, err := b.beginShiftGesture(id)
	if err != nil {
		return err
	}

	grab := 0
	if b.InGrid(p) {
		pointerSlot := int(math.Floor((p.Y - b.layout.Top) / b.geo.Config().SlotHeight))
		grab = max(0, pointerSlot-b.geo.SlotIndex(shift.MinutesOfDay(s.Start)))
	}

	b.state = Moving{ShiftID: id, Original: s, Origin: p, GrabSlots: grab}
	b.log.Log("GESTURE_START", debuglog.Fields{"kind": "move", "shift": id, "grab": grab})
	return nil
}

// MoveTo updates the drag flag and, once dragging inside the grid,
// publishes the preview for the pointer position. Outside the grid the last
// preview is kept.
func (b *Board) MoveTo(p Pointer) {
	st, ok := b.state.(Moving)
	if !ok {
		return
	}
	if !st.DidDrag && p.Exceeds(b.dragThreshold) {
		st.DidDrag = true
		b.state = st
	}
	if !st.DidDrag || !b.InGrid(p) {
		return
	}
	start, end := b.movePlacement(st, p)
	b.setPreview(Preview{ShiftID: st.ShiftID, Start: start, End: end})
}

// EndMove finishes a body drag. A release without movement is a click and
// opens the editor; a release outside the grid discards the move.
func (b *Board) EndMove(p Pointer) Outcome {
	st, ok := b.state.(Moving)
	if !ok {
		return OutcomeNone
	}
	b.state = Idle{}

	var out Outcome
	switch {
	case !st.DidDrag && !p.Exceeds(b.dragThreshold):
		b.discardPreview()
		b.notify.OpenEditor(st.ShiftID)
		out = OutcomeClick
	case !b.InGrid(p):
		b.discardPreview()
		out = OutcomeDiscarded
	default:
		start, end := b.movePlacement(st, p)
		out = b.commitUpdate(st.ShiftID, start, end, shift.Patch{Start: &start, End: &end})
	}

	b.log.Log("GESTURE_END", debuglog.Fields{"kind": "move", "shift": st.ShiftID, "outcome": out.String()})
	return out
}

// MoveShift places a shift on date starting at startMinutes, keeping its
// length, snapped and clamped the same way a body drag is.
func (b *Board) MoveShift(id string, date time.Time, startMinutes int) Outcome {
	s, ok := b.Lookup(id)
	if !ok {
		return OutcomeStale
	}
	start, end := b.clampInterval(date, b.geo.Snap(startMinutes), s.Duration())
	return b.commitUpdate(id, start, end, shift.Patch{Start: &start, End: &end})
}

// movePlacement computes the (day, start, end) under the pointer. Vertical
// drags within one column and drags across columns use the same formula.
func (b *Board) movePlacement(st Moving, p Pointer) (time.Time, time.Time) {
	day := b.layout.dayAt(p.X)
	slot := clampInt(b.geo.SlotAt(p.Y-b.layout.Top)-st.GrabSlots, 0, b.geo.SlotCount()-1)
	startMinutes := b.geo.Snap(b.geo.SlotMinutes(slot))
	return b.clampInterval(b.layout.Date(day), startMinutes, st.Original.Duration())
}
