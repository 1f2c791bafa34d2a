package board

import (
	"testing"

	"github.com/javiermolinar/rota/internal/shift"
)

func drag(origin Pointer, dx, dy float64) Pointer {
	return Pointer{X: origin.X + dx, Y: origin.Y + dy, DX: dx, DY: dy}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		dy      float64
		want    Outcome
		wantEnd string
	}{
		{name: "45px rounds to next slot", dy: 45, want: OutcomeDispatched, wantEnd: "10:30"},
		{name: "one slot", dy: 48, want: OutcomeDispatched, wantEnd: "10:30"},
		{name: "below half slot", dy: 20, want: OutcomeUnchanged},
		{name: "shrink", dy: -48, want: OutcomeDispatched, wantEnd: "09:30"},
		{name: "floor at one slot", dy: -400, want: OutcomeDispatched, wantEnd: "09:30"},
		{name: "clamp at closing", dy: 5000, want: OutcomeDispatched, wantEnd: "21:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, false, mkShift("s1", "e1", 0, "09:00", "10:00"))
			origin := point(0, "09:30")
			if err := f.board.BeginResize("s1", origin); err != nil {
				t.Fatalf("BeginResize() error = %v", err)
			}

			p := drag(origin, 0, tc.dy)
			f.board.Move(p)
			if tc.want == OutcomeDispatched {
				pv, ok := f.board.Preview()
				if !ok {
					t.Fatal("no preview during resize")
				}
				if !pv.End.Equal(at(0, tc.wantEnd)) || !pv.Start.Equal(at(0, "09:00")) {
					t.Errorf("preview = %v-%v, want 09:00-%s", pv.Start, pv.End, tc.wantEnd)
				}
			}

			if got := f.board.End(p); got != tc.want {
				t.Fatalf("End() = %v, want %v", got, tc.want)
			}
			if tc.want != OutcomeDispatched {
				if len(f.gw.updates) != 0 {
					t.Fatalf("UpdateShift called %d times, want 0", len(f.gw.updates))
				}
				return
			}

			if len(f.gw.updates) != 1 {
				t.Fatalf("UpdateShift called %d times, want 1", len(f.gw.updates))
			}
			up := f.gw.updates[0]
			if up.id != "s1" || up.patch.Start != nil || up.patch.End == nil {
				t.Fatalf("update = %+v, want end-only patch for s1", up)
			}
			if !up.patch.End.Equal(at(0, tc.wantEnd)) {
				t.Errorf("End = %v, want %s", *up.patch.End, tc.wantEnd)
			}
		})
	}
}

func TestResize_PreviewDoesNotDrift(t *testing.T) {
	f := newFixture(t, false, mkShift("s1", "e1", 0, "09:00", "10:00"))
	origin := point(0, "09:30")
	if err := f.board.BeginResize("s1", origin); err != nil {
		t.Fatalf("BeginResize() error = %v", err)
	}

	for _, dy := range []float64{10, 30, 60, 96, 40} {
		f.board.Move(drag(origin, 0, dy))
	}
	pv, _ := f.board.Preview()
	if !pv.End.Equal(at(0, "10:30")) {
		t.Errorf("preview end = %v, want 10:30", pv.End)
	}
	if len(f.gw.updates) != 0 {
		t.Error("UpdateShift called during drag")
	}
}

func TestResize_Conflict(t *testing.T) {
	f := newFixture(t, false,
		mkShift("s1", "e1", 0, "09:00", "10:00"),
		mkShift("s2", "e1", 0, "11:00", "12:00"),
	)
	origin := point(0, "09:30")
	if err := f.board.BeginResize("s1", origin); err != nil {
		t.Fatalf("BeginResize() error = %v", err)
	}
	p := drag(origin, 0, 3*slotHeight)

	if got := f.board.End(p); got != OutcomeConflict {
		t.Fatalf("End() = %v, want %v", got, OutcomeConflict)
	}
	if len(f.gw.updates) != 0 {
		t.Error("UpdateShift called despite conflict")
	}
	if len(f.notify.warnings) != 1 {
		t.Errorf("warnings = %v, want one", f.notify.warnings)
	}
	if _, ok := f.board.Preview(); ok {
		t.Error("preview kept after conflict")
	}
}

func TestResize_StaleShift(t *testing.T) {
	f := newFixture(t, false, mkShift("s1", "e1", 0, "09:00", "10:00"))
	origin := point(0, "09:30")
	if err := f.board.BeginResize("s1", origin); err != nil {
		t.Fatalf("BeginResize() error = %v", err)
	}
	p := drag(origin, 0, slotHeight)
	f.board.Move(p)

	f.board.SetShifts(nil)
	if got := f.board.End(p); got != OutcomeStale {
		t.Fatalf("End() = %v, want %v", got, OutcomeStale)
	}
	if _, ok := f.board.Preview(); ok {
		t.Error("stale preview kept")
	}
	if len(f.gw.updates) != 0 {
		t.Error("UpdateShift called for a vanished shift")
	}
}

func TestResizeShift(t *testing.T) {
	f := newFixture(t, false, mkShift("s1", "e1", 0, "09:00", "10:00"))

	tests := []struct {
		end  string
		want string
	}{
		{end: "12:10", want: "12:00"},
		{end: "12:15", want: "12:30"},
		{end: "08:00", want: "09:30"},
		{end: "23:00", want: "21:00"},
	}
	for _, tc := range tests {
		got := f.board.ResizeShift("s1", shift.TimeToMinutes(tc.end))
		if got != OutcomeDispatched {
			t.Fatalf("ResizeShift(%s) = %v", tc.end, got)
		}
		last := f.gw.updates[len(f.gw.updates)-1]
		if !last.patch.End.Equal(at(0, tc.want)) {
			t.Errorf("ResizeShift(%s) end = %v, want %s", tc.end, *last.patch.End, tc.want)
		}
	}

	if got := f.board.ResizeShift("s1", shift.TimeToMinutes("10:00")); got != OutcomeUnchanged {
		t.Errorf("ResizeShift(same) = %v, want %v", got, OutcomeUnchanged)
	}
	if got := f.board.ResizeShift("nope", 600); got != OutcomeStale {
		t.Errorf("ResizeShift(missing) = %v, want %v", got, OutcomeStale)
	}
}
