package board

import (
	"time"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// Preview is the tentative placement of a shift during a resize or move.
// It is never part of the authoritative list.
type Preview struct {
	ShiftID string
	Start   time.Time
	End     time.Time
	Pending bool // a command carrying this placement has not settled

	opSeq uint64
}

// Preview returns the preview of the gesture in progress or, when idle,
// the most recently dispatched placement still waiting to settle.
func (b *Board) Preview() (Preview, bool) {
	if b.preview != nil {
		return *b.preview, true
	}
	var (
		latest Preview
		found  bool
	)
	for _, p := range b.pending {
		if !found || p.opSeq > latest.opSeq {
			latest, found = p, true
		}
	}
	return latest, found
}

// PendingPreview returns the unsettled placement dispatched for a shift.
func (b *Board) PendingPreview(id string) (Preview, bool) {
	p, ok := b.pending[id]
	return p, ok
}

// Display returns the authoritative shifts with every pending placement and
// the active preview applied. Previews whose shift has vanished from the
// list are ignored.
func (b *Board) Display() []shift.Shift {
	out := b.Shifts()
	if b.preview == nil && len(b.pending) == 0 {
		return out
	}
	for i := range out {
		if p, ok := b.pending[out[i].ID]; ok {
			out[i].Start, out[i].End = p.Start, p.End
		}
		if b.preview != nil && out[i].ID == b.preview.ShiftID {
			out[i].Start, out[i].End = b.preview.Start, b.preview.End
		}
	}
	return out
}

func (b *Board) setPreview(p Preview) {
	if b.preview != nil && b.preview.ShiftID == p.ShiftID &&
		b.preview.Start.Equal(p.Start) && b.preview.End.Equal(p.End) {
		return
	}
	b.preview = &p
	b.log.Log("PREVIEW", debuglog.Fields{
		"shift": p.ShiftID,
		"start": p.Start.Format("2006-01-02 15:04"),
		"end":   p.End.Format("2006-01-02 15:04"),
	})
}

func (b *Board) discardPreview() {
	b.preview = nil
}

// holdPreview moves the active preview for op's shift into the pending set
// so a later gesture on another shift cannot replace it.
func (b *Board) holdPreview(op Op) {
	if b.preview == nil || op.ShiftID == "" || b.preview.ShiftID != op.ShiftID {
		return
	}
	p := *b.preview
	p.Pending = true
	p.opSeq = op.Seq
	b.pending[op.ShiftID] = p
	b.preview = nil
}
