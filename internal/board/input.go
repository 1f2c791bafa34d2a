package board

import "math"

// TargetKind identifies what a gesture started on.
type TargetKind int

const (
	TargetEmployee     TargetKind = iota // roster chip
	TargetShiftBody                      // shift block
	TargetResizeHandle                   // bottom edge of a shift block
)

func (k TargetKind) String() string {
	switch k {
	case TargetEmployee:
		return "employee"
	case TargetShiftBody:
		return "shift"
	case TargetResizeHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Target is the element under the pointer when a gesture starts.
type Target struct {
	Kind TargetKind
	ID   string // employee id or shift id
}

// Pointer is a pointer position in grid pixels. DX and DY are the
// displacement from where the gesture started.
type Pointer struct {
	X, Y   float64
	DX, DY float64
}

// Exceeds reports whether the displacement passes threshold on either axis.
func (p Pointer) Exceeds(threshold float64) bool {
	return math.Abs(p.DX) > threshold || math.Abs(p.DY) > threshold
}

// GestureStart is delivered on pointer down.
type GestureStart struct {
	Target  Target
	Pointer Pointer
}

// InputEventSource adapts a UI toolkit's pointer events into gestures.
// Positions and deltas are computed by the source.
type InputEventSource interface {
	OnGestureStart(func(GestureStart) error)
	OnGestureMove(func(Pointer))
	OnGestureEnd(func(Pointer) Outcome)
}

// Attach binds the board's gesture handlers to src.
func (b *Board) Attach(src InputEventSource) {
	src.OnGestureStart(b.Start)
	src.OnGestureMove(b.Move)
	src.OnGestureEnd(b.End)
}
