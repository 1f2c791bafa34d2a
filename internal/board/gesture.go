package board

import "github.com/javiermolinar/rota/internal/shift"

// GestureState is the single active gesture slot. Exactly one of Idle,
// Creating, Resizing or Moving.
type GestureState interface {
	Name() string
}

// Idle means no gesture is in progress.
type Idle struct{}

// Creating tracks an employee chip being dragged over the grid.
type Creating struct {
	EmployeeID string
	Hover      *Cell // cell under the pointer, for highlighting
}

// Resizing tracks a drag on a shift's bottom handle.
type Resizing struct {
	ShiftID  string
	Original shift.Shift
	Origin   Pointer
}

// Moving tracks a drag on a shift's body.
type Moving struct {
	ShiftID   string
	Original  shift.Shift
	Origin    Pointer
	GrabSlots int  // slots between the shift's first row and the grabbed row
	DidDrag   bool // pointer travelled past the drag threshold
}

func (Idle) Name() string     { return "idle" }
func (Creating) Name() string { return "creating" }
func (Resizing) Name() string { return "resizing" }
func (Moving) Name() string   { return "moving" }
