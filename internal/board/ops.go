package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
)

// ErrAddFailed is reported when the gateway returns no shift and no error.
var ErrAddFailed = errors.New("shift was not created")

// OpKind is the persistence command issued by a commit.
type OpKind int

const (
	OpAdd OpKind = iota
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one gateway call. Ops are produced on the event loop and executed
// wherever the Dispatcher chooses.
type Op struct {
	Seq     uint64
	Kind    OpKind
	ShiftID string // update and delete
	Add     shift.NewShift
	Patch   shift.Patch
}

// Result is the settled outcome of an Op.
type Result struct {
	Op      Op
	Shift   *shift.Shift
	Deleted bool
	Err     error
}

// Dispatcher runs Ops asynchronously and later hands the Result back to
// Board.Settle on the event loop.
type Dispatcher interface {
	Dispatch(op Op)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(op Op)

// Dispatch calls f(op).
func (f DispatchFunc) Dispatch(op Op) { f(op) }

// Execute performs the gateway call for op. It only touches the gateway, so
// it may run off the event loop.
func (b *Board) Execute(ctx context.Context, op Op) Result {
	res := Result{Op: op}
	switch op.Kind {
	case OpAdd:
		res.Shift, res.Err = b.gateway.AddShift(ctx, op.Add)
		if res.Err == nil && res.Shift == nil {
			res.Err = ErrAddFailed
		}
	case OpUpdate:
		res.Shift, res.Err = b.gateway.UpdateShift(ctx, op.ShiftID, op.Patch)
	case OpDelete:
		res.Deleted, res.Err = b.gateway.DeleteShift(ctx, op.ShiftID)
		if res.Err == nil && !res.Deleted {
			res.Err = shift.ErrShiftNotFound
		}
	default:
		res.Err = fmt.Errorf("unknown op kind %d", op.Kind)
	}
	if res.Err != nil {
		res.Err = fmt.Errorf("%s shift: %w", op.Kind, res.Err)
	}
	return res
}

// Settle applies a Result on the event loop: the shift is released for new
// gestures and its preview is dropped whether the call succeeded or not.
// The authoritative list is not touched; callers refresh it with SetShifts.
func (b *Board) Settle(res Result) {
	delete(b.inflight, res.Op.ShiftID)
	if p, ok := b.pending[res.Op.ShiftID]; ok && p.opSeq == res.Op.Seq {
		delete(b.pending, res.Op.ShiftID)
	}

	fields := debuglog.Fields{"op": res.Op.Kind.String(), "seq": res.Op.Seq, "shift": res.Op.ShiftID}
	if res.Err != nil {
		fields["error"] = res.Err.Error()
	}
	b.log.Log("OP_SETTLED", fields)
}

func (b *Board) dispatch(op Op) {
	b.seq++
	op.Seq = b.seq
	if op.ShiftID != "" {
		b.inflight[op.ShiftID] = true
	}
	b.holdPreview(op)
	b.log.Log("OP_DISPATCHED", debuglog.Fields{"op": op.Kind.String(), "seq": op.Seq, "shift": op.ShiftID})

	if b.dispatcher == nil {
		b.Settle(b.Execute(context.Background(), op))
		return
	}
	b.dispatcher.Dispatch(op)
}
