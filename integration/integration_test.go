package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/db"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)

const (
	labelWidth = 60.0
	colWidth   = 100.0
	slotHeight = grid.DefaultSlotHeight
)

// openStore creates a fresh database for each test with automatic cleanup.
func openStore(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// addEmployee is a helper to insert an active employee.
func addEmployee(t *testing.T, store *db.SQLite, name string) *shift.Employee {
	t.Helper()
	e := &shift.Employee{Name: name, Status: shift.StatusActive}
	if err := store.CreateEmployee(context.Background(), e); err != nil {
		t.Fatalf("failed to insert employee: %v", err)
	}
	return e
}

// addShift is a helper to insert a shift on the given day of the test week.
func addShift(t *testing.T, store *db.SQLite, e *shift.Employee, day int, start, end string) *shift.Shift {
	t.Helper()
	date := monday.AddDate(0, 0, day).Format("2006-01-02")
	ns, err := shift.New(e.ID, date, start, end)
	if err != nil {
		t.Fatalf("failed to build shift: %v", err)
	}
	s, err := store.AddShift(context.Background(), *ns)
	if err != nil {
		t.Fatalf("failed to insert shift: %v", err)
	}
	return s
}

// point returns a pointer inside the cell for day and hh:mm.
func point(day int, hhmm string) board.Pointer {
	slot := (shift.TimeToMinutes(hhmm) - shift.DefaultTimeRange.StartMinutes) / shift.SlotMinutes
	return board.Pointer{
		X: labelWidth + float64(day)*colWidth + colWidth/2,
		Y: float64(slot)*slotHeight + 5,
	}
}

// from returns p with its displacement measured from origin.
func from(origin, p board.Pointer) board.Pointer {
	p.DX = p.X - origin.X
	p.DY = p.Y - origin.Y
	return p
}

type warnings []string

func (w *warnings) Warn(key string)     { *w = append(*w, key) }
func (w *warnings) OpenEditor(_ string) {}

// harness runs a board against SQLite the way the TUI does: ops execute on
// a goroutine and their results are settled back on the test goroutine.
type harness struct {
	t       *testing.T
	store   *db.SQLite
	board   *board.Board
	results chan board.Result
	warns   warnings
}

func newHarness(t *testing.T, store *db.SQLite) *harness {
	t.Helper()
	h := &harness{t: t, store: store, results: make(chan board.Result, 8)}

	geo := grid.New(grid.DefaultConfig(), shift.DefaultTimeRange)
	h.board = board.New(geo, store,
		board.WithNotifier(&h.warns),
		board.WithLayout(board.Layout{
			Width:      labelWidth + 7*colWidth,
			LabelWidth: labelWidth,
			Days:       7,
			WeekStart:  monday,
		}),
		board.WithDispatcher(board.DispatchFunc(func(op board.Op) {
			go func() { h.results <- h.board.Execute(context.Background(), op) }()
		})),
	)
	h.reload()
	return h
}

// reload replaces the board's snapshots with what is stored.
func (h *harness) reload() {
	h.t.Helper()
	ctx := context.Background()
	shifts, err := h.store.ListShiftsByDateRange(ctx, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		h.t.Fatalf("failed to list shifts: %v", err)
	}
	employees, err := h.store.ListEmployees(ctx, false)
	if err != nil {
		h.t.Fatalf("failed to list employees: %v", err)
	}
	h.board.SetShifts(shifts)
	h.board.SetEmployees(employees)
}

// settle waits for one result, settles it and reloads.
func (h *harness) settle() board.Result {
	h.t.Helper()
	select {
	case res := <-h.results:
		h.board.Settle(res)
		h.reload()
		return res
	case <-time.After(5 * time.Second):
		h.t.Fatal("timed out waiting for a result")
		return board.Result{}
	}
}

// drag runs a full gesture from start to end.
func (h *harness) drag(target board.Target, start, end board.Pointer) board.Outcome {
	h.t.Helper()
	if err := h.board.Start(board.GestureStart{Target: target, Pointer: start}); err != nil {
		h.t.Fatalf("Start(%v) failed: %v", target.Kind, err)
	}
	h.board.Move(from(start, end))
	return h.board.End(from(start, end))
}

func (h *harness) stored(id string) *shift.Shift {
	h.t.Helper()
	s, err := h.store.GetShift(context.Background(), id)
	if err != nil {
		h.t.Fatalf("failed to get shift: %v", err)
	}
	if s == nil {
		h.t.Fatalf("shift %s not found in database", id)
	}
	return s
}

func span(s *shift.Shift) string {
	return s.DayKey() + " " + s.StartClock() + "-" + s.EndClock()
}

func TestCreateMoveResizeDelete(t *testing.T) {
	store := openStore(t)
	ana := addEmployee(t, store, "Ana")
	h := newHarness(t, store)

	// Drop Ana on Wednesday 09:00.
	chip := board.Pointer{X: 5, Y: 5}
	out := h.drag(board.Target{Kind: board.TargetEmployee, ID: ana.ID}, chip, point(2, "09:00"))
	if out != board.OutcomeDispatched {
		t.Fatalf("create outcome: got %v, want dispatched", out)
	}
	res := h.settle()
	if res.Err != nil {
		t.Fatalf("create failed: %v", res.Err)
	}
	id := res.Shift.ID
	if got := span(h.stored(id)); got != "2025-01-08 09:00-13:00" {
		t.Errorf("created: got %s, want 2025-01-08 09:00-13:00", got)
	}

	// Grab the block at 10:00 and drop it on Thursday 11:00. The grab row is
	// kept, so the shift starts at 10:00.
	out = h.drag(board.Target{Kind: board.TargetShiftBody, ID: id}, point(2, "10:00"), point(3, "11:00"))
	if out != board.OutcomeDispatched {
		t.Fatalf("move outcome: got %v, want dispatched", out)
	}
	if res := h.settle(); res.Err != nil {
		t.Fatalf("move failed: %v", res.Err)
	}
	if got := span(h.stored(id)); got != "2025-01-09 10:00-14:00" {
		t.Errorf("moved: got %s, want 2025-01-09 10:00-14:00", got)
	}

	// Pull the handle down two slots.
	handle := point(3, "13:30")
	down := handle
	down.Y += 2 * slotHeight
	out = h.drag(board.Target{Kind: board.TargetResizeHandle, ID: id}, handle, down)
	if out != board.OutcomeDispatched {
		t.Fatalf("resize outcome: got %v, want dispatched", out)
	}
	if res := h.settle(); res.Err != nil {
		t.Fatalf("resize failed: %v", res.Err)
	}
	if got := span(h.stored(id)); got != "2025-01-09 10:00-15:00" {
		t.Errorf("resized: got %s, want 2025-01-09 10:00-15:00", got)
	}

	if out := h.board.UpdateNotes(id, "keys"); out != board.OutcomeDispatched {
		t.Fatalf("notes outcome: got %v, want dispatched", out)
	}
	h.settle()
	if got := h.stored(id).Notes; got != "keys" {
		t.Errorf("notes: got %q, want %q", got, "keys")
	}

	if out := h.board.Delete(id); out != board.OutcomeDispatched {
		t.Fatalf("delete outcome: got %v, want dispatched", out)
	}
	if res := h.settle(); !res.Deleted {
		t.Errorf("delete result: got %+v, want Deleted", res)
	}
	if len(h.board.Shifts()) != 0 {
		t.Errorf("board still shows %d shifts after delete", len(h.board.Shifts()))
	}
}

func TestPendingShiftIsBusy(t *testing.T) {
	store := openStore(t)
	ana := addEmployee(t, store, "Ana")
	s := addShift(t, store, ana, 0, "09:00", "13:00")
	h := newHarness(t, store)

	out := h.drag(board.Target{Kind: board.TargetShiftBody, ID: s.ID}, point(0, "09:00"), point(1, "09:00"))
	if out != board.OutcomeDispatched {
		t.Fatalf("move outcome: got %v, want dispatched", out)
	}

	// Until the result settles the shift shows at its new place and cannot
	// be grabbed again.
	if !h.board.Busy(s.ID) {
		t.Error("shift should be busy while its move is pending")
	}
	p, ok := h.board.Preview()
	if !ok || !p.Pending || p.Start.Weekday() != time.Tuesday {
		t.Errorf("pending preview: got %+v (ok=%v), want tuesday pending", p, ok)
	}
	err := h.board.Start(board.GestureStart{
		Target:  board.Target{Kind: board.TargetShiftBody, ID: s.ID},
		Pointer: point(1, "09:00"),
	})
	if !errors.Is(err, board.ErrShiftBusy) {
		t.Errorf("Start on a busy shift: got %v, want ErrShiftBusy", err)
	}
	if out := h.board.Delete(s.ID); out != board.OutcomeBusy {
		t.Errorf("Delete on a busy shift: got %v, want busy", out)
	}

	h.settle()
	if h.board.Busy(s.ID) {
		t.Error("shift still busy after settle")
	}
	if _, ok := h.board.Preview(); ok {
		t.Error("preview kept after settle")
	}
	if got := span(h.stored(s.ID)); got != "2025-01-07 09:00-13:00" {
		t.Errorf("moved: got %s, want 2025-01-07 09:00-13:00", got)
	}
}

func TestOverlapNeverReachesStore(t *testing.T) {
	store := openStore(t)
	ana := addEmployee(t, store, "Ana")
	bo := addEmployee(t, store, "Bo")
	addShift(t, store, ana, 0, "09:00", "13:00")
	addShift(t, store, bo, 0, "09:00", "13:00")
	h := newHarness(t, store)

	chip := board.Pointer{X: 5, Y: 5}
	out := h.drag(board.Target{Kind: board.TargetEmployee, ID: ana.ID}, chip, point(0, "11:00"))
	if out != board.OutcomeConflict {
		t.Fatalf("overlapping create: got %v, want conflict", out)
	}
	if len(h.warns) != 1 {
		t.Errorf("warnings: got %v, want one", h.warns)
	}

	// Touching the end of the existing shift is fine.
	out = h.drag(board.Target{Kind: board.TargetEmployee, ID: ana.ID}, chip, point(0, "13:00"))
	if out != board.OutcomeDispatched {
		t.Fatalf("touching create: got %v, want dispatched", out)
	}
	if res := h.settle(); res.Err != nil {
		t.Fatalf("touching create failed: %v", res.Err)
	}

	shifts, err := store.ListShiftsByDateRange(context.Background(), monday, monday)
	if err != nil {
		t.Fatalf("failed to list shifts: %v", err)
	}
	if len(shifts) != 3 {
		t.Errorf("stored shifts: got %d, want 3", len(shifts))
	}
}

func TestStoreRejectionsSettle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	ana := addEmployee(t, store, "Ana")
	bo := addEmployee(t, store, "Bo")
	s := addShift(t, store, ana, 0, "09:00", "13:00")
	h := newHarness(t, store)

	// Changes made behind the board's back: the shift is deleted and Bo is
	// deactivated.
	if _, err := store.DeleteShift(ctx, s.ID); err != nil {
		t.Fatalf("failed to delete shift: %v", err)
	}
	if err := store.SetEmployeeStatus(ctx, bo.ID, shift.StatusInactive); err != nil {
		t.Fatalf("failed to deactivate employee: %v", err)
	}

	if out := h.board.UpdateNotes(s.ID, "late"); out != board.OutcomeDispatched {
		t.Fatalf("notes outcome: got %v, want dispatched", out)
	}
	if res := h.settle(); !errors.Is(res.Err, shift.ErrShiftNotFound) {
		t.Errorf("notes on a deleted shift: got %v, want ErrShiftNotFound", res.Err)
	}
	if _, ok := h.board.Lookup(s.ID); ok {
		t.Error("deleted shift still on the board after reload")
	}

	// The reload picked up Bo's new status, so the board refuses him.
	if err := h.board.BeginCreate(bo.ID); !errors.Is(err, shift.ErrEmployeeInactive) {
		t.Errorf("BeginCreate(inactive): got %v, want ErrEmployeeInactive", err)
	}

	// A board with a stale roster gets the same answer from the store.
	h.board.SetEmployees([]*shift.Employee{{ID: bo.ID, Name: "Bo", Status: shift.StatusActive}})
	if out := h.board.DropEmployee(bo.ID, monday, 4); out != board.OutcomeDispatched {
		t.Fatalf("stale roster drop: got %v, want dispatched", out)
	}
	if res := h.settle(); !errors.Is(res.Err, shift.ErrEmployeeInactive) {
		t.Errorf("drop for inactive employee: got %v, want ErrEmployeeInactive", res.Err)
	}
}
