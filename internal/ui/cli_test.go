package ui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/db"
	"github.com/javiermolinar/rota/internal/shift"
)

// wednesday is the "today" of every test: 2025-01-08, in the week of
// Monday 2025-01-06.
var wednesday = time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local)

type cliFixture struct {
	t     *testing.T
	store *db.SQLite
	cfg   *config.Config
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	DisableColor()

	dir := t.TempDir()
	store, err := db.New(filepath.Join(dir, "rota.db"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "rota.db")
	return &cliFixture{t: t, store: store, cfg: cfg}
}

// run executes one command on a fresh App, since cobra keeps flag values
// between executions.
func (f *cliFixture) run(args ...string) (string, error) {
	f.t.Helper()
	a := NewApp(f.store, f.cfg)
	a.now = func() time.Time { return wednesday }
	a.path = filepath.Join(f.t.TempDir(), "config.toml")

	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetArgs(args)
	err := a.Execute()
	return out.String(), err
}

func (f *cliFixture) mustRun(args ...string) string {
	f.t.Helper()
	out, err := f.run(args...)
	if err != nil {
		f.t.Fatalf("rota %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (f *cliFixture) addEmployee(name string) *shift.Employee {
	f.t.Helper()
	e := &shift.Employee{Name: name, Status: shift.StatusActive}
	if err := f.store.CreateEmployee(context.Background(), e); err != nil {
		f.t.Fatalf("CreateEmployee(%s) error = %v", name, err)
	}
	return e
}

func (f *cliFixture) addShift(e *shift.Employee, date, start, end string) *shift.Shift {
	f.t.Helper()
	ns, err := shift.New(e.ID, date, start, end)
	if err != nil {
		f.t.Fatalf("shift.New() error = %v", err)
	}
	s, err := f.store.AddShift(context.Background(), *ns)
	if err != nil {
		f.t.Fatalf("AddShift() error = %v", err)
	}
	return s
}

func (f *cliFixture) shifts(date string) []*shift.Shift {
	f.t.Helper()
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		f.t.Fatal(err)
	}
	shifts, err := f.store.ListShiftsByDateRange(context.Background(), day, day)
	if err != nil {
		f.t.Fatalf("ListShiftsByDateRange() error = %v", err)
	}
	return shifts
}

func span(s *shift.Shift) string {
	return s.StartClock() + "-" + s.EndClock()
}

func TestEmployeeCommands(t *testing.T) {
	f := newCLIFixture(t)

	out := f.mustRun("employee", "add", "Ana Lopez")
	if !strings.Contains(out, "Added Ana Lopez") {
		t.Errorf("employee add output = %q", out)
	}
	f.mustRun("emp", "add", "Bo")

	out = f.mustRun("employee", "deactivate", "bo")
	if !strings.Contains(out, "Bo is now inactive") {
		t.Errorf("deactivate output = %q", out)
	}
	out = f.mustRun("employee", "deactivate", "Bo")
	if !strings.Contains(out, "already inactive") {
		t.Errorf("second deactivate output = %q", out)
	}

	out = f.mustRun("employee", "list")
	if !strings.Contains(out, "Ana Lopez") || strings.Contains(out, "Bo") {
		t.Errorf("employee list = %q, want only active employees", out)
	}
	out = f.mustRun("employee", "list", "--all")
	if !strings.Contains(out, "Bo  (inactive)") {
		t.Errorf("employee list --all = %q, want inactive Bo", out)
	}

	f.mustRun("employee", "activate", "Bo")
	out = f.mustRun("employee", "list")
	if !strings.Contains(out, "Bo") {
		t.Errorf("employee list after activate = %q", out)
	}

	if _, err := f.run("employee", "add", "   "); err == nil {
		t.Error("employee add with a blank name succeeded")
	}
}

func TestResolveEmployee(t *testing.T) {
	f := newCLIFixture(t)
	ana := f.addEmployee("Ana")
	f.addEmployee("Anabel")

	a := NewApp(f.store, f.cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{name: "exact id", ref: ana.ID, wantID: ana.ID},
		{name: "name ignores case", ref: "ANA", wantID: ana.ID},
		{name: "unknown", ref: "Cy", wantErr: shift.ErrEmployeeNotFound},
		{name: "blank", ref: " ", wantErr: shift.ErrEmptyEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := a.resolveEmployee(ctx, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveEmployee(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveEmployee(%q) error = %v", tt.ref, err)
			}
			if e.ID != tt.wantID {
				t.Errorf("resolveEmployee(%q) = %s, want %s", tt.ref, e.ID, tt.wantID)
			}
		})
	}
}

func TestShiftAdd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantSpan string
	}{
		{
			name:     "default length",
			args:     []string{"--date=2025-01-07", "--start=09:00"},
			wantSpan: "09:00-13:00",
		},
		{
			name:     "default length cut at closing",
			args:     []string{"--date=2025-01-07", "--start=19:00"},
			wantSpan: "19:00-21:00",
		},
		{
			name:     "explicit end",
			args:     []string{"--date=2025-01-07", "--start=07:00", "--end=08:30"},
			wantSpan: "07:00-08:30",
		},
		{
			name:     "touches existing shift",
			args:     []string{"--date=2025-01-07", "--start=13:00", "--end=15:00"},
			wantSpan: "13:00-15:00",
		},
		{
			name:    "overlaps existing shift",
			args:    []string{"--date=2025-01-07", "--start=14:00", "--end=16:00"},
			wantErr: shift.ErrShiftOverlap,
		},
		{
			name:    "before opening",
			args:    []string{"--date=2025-01-07", "--start=06:00", "--end=08:00"},
			wantErr: shift.ErrOutsideHours,
		},
		{
			name:    "off the slot grid",
			args:    []string{"--date=2025-01-07", "--start=09:15"},
			wantErr: shift.ErrOffSlot,
		},
		{
			name:    "end before start",
			args:    []string{"--date=2025-01-07", "--start=15:00", "--end=14:00"},
			wantErr: shift.ErrEndBeforeStart,
		},
		{
			name:    "bad clock",
			args:    []string{"--date=2025-01-07", "--start=9am"},
			wantErr: shift.ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)
			ana := f.addEmployee("Ana")
			f.addShift(ana, "2025-01-07", "15:00", "17:00")

			out, err := f.run(append([]string{"shift", "add", "Ana"}, tt.args...)...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("shift add error = %v, want %v", err, tt.wantErr)
				}
				if got := len(f.shifts("2025-01-07")); got != 1 {
					t.Errorf("rejected add stored %d shifts, want 1", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("shift add error = %v", err)
			}
			if !strings.Contains(out, "Created shift") || !strings.Contains(out, tt.wantSpan) {
				t.Errorf("shift add output = %q, want %s", out, tt.wantSpan)
			}

			var spans []string
			for _, s := range f.shifts("2025-01-07") {
				spans = append(spans, span(s))
			}
			if !strings.Contains(strings.Join(spans, " "), tt.wantSpan) {
				t.Errorf("stored shifts = %v, want %s", spans, tt.wantSpan)
			}
		})
	}
}

func TestShiftAdd_Employee(t *testing.T) {
	f := newCLIFixture(t)
	bo := f.addEmployee("Bo")
	if err := f.store.SetEmployeeStatus(context.Background(), bo.ID, shift.StatusInactive); err != nil {
		t.Fatal(err)
	}

	if _, err := f.run("shift", "add", "Bo", "--start=09:00"); !errors.Is(err, shift.ErrEmployeeInactive) {
		t.Errorf("add for inactive employee error = %v, want ErrEmployeeInactive", err)
	}
	if _, err := f.run("shift", "add", "Cy", "--start=09:00"); !errors.Is(err, shift.ErrEmployeeNotFound) {
		t.Errorf("add for unknown employee error = %v, want ErrEmployeeNotFound", err)
	}

	// Relative dates resolve against today, Wednesday 2025-01-08.
	ana := f.addEmployee("Ana")
	f.mustRun("shift", "add", ana.Name, "--date=friday", "--start=09:00")
	if got := len(f.shifts("2025-01-10")); got != 1 {
		t.Errorf("shifts on friday = %d, want 1", got)
	}
}

func TestShiftResize(t *testing.T) {
	tests := []struct {
		name     string
		end      string
		wantSpan string
		wantOut  string
		wantErr  error
	}{
		{name: "longer", end: "16:00", wantSpan: "09:00-16:00", wantOut: "Resized shift"},
		{name: "clamped to one slot", end: "08:00", wantSpan: "09:00-09:30", wantOut: "Resized shift"},
		{name: "clamped at closing", end: "23:00", wantSpan: "09:00-21:00", wantOut: "Resized shift"},
		{name: "same end", end: "13:00", wantSpan: "09:00-13:00", wantOut: "unchanged"},
		{name: "into the next shift", end: "15:00", wantSpan: "09:00-13:00", wantErr: shift.ErrShiftOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)
			ana := f.addEmployee("Ana")
			s := f.addShift(ana, "2025-01-06", "09:00", "13:00")
			if tt.wantErr != nil {
				f.addShift(ana, "2025-01-06", "14:00", "16:00")
			}

			out, err := f.run("shift", "resize", s.ID, "--end="+tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resize error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("resize error = %v", err)
			} else if !strings.Contains(out, tt.wantOut) {
				t.Errorf("resize output = %q, want %q", out, tt.wantOut)
			}

			got, err := f.store.GetShift(context.Background(), s.ID)
			if err != nil || got == nil {
				t.Fatalf("GetShift() = %v, %v", got, err)
			}
			if span(got) != tt.wantSpan {
				t.Errorf("stored span = %s, want %s", span(got), tt.wantSpan)
			}
		})
	}
}

func TestShiftMove(t *testing.T) {
	f := newCLIFixture(t)
	ana := f.addEmployee("Ana")
	bo := f.addEmployee("Bo")
	s := f.addShift(ana, "2025-01-06", "09:00", "13:00")
	f.addShift(ana, "2025-01-09", "10:00", "12:00")
	f.addShift(bo, "2025-01-08", "09:00", "13:00")

	// Another employee's shift never conflicts.
	f.mustRun("shift", "move", s.ID, "--date=wednesday")
	if got := f.shifts("2025-01-08"); len(got) != 2 {
		t.Fatalf("shifts on wednesday = %d, want 2", len(got))
	}

	// Runs past closing, so it moves earlier to end at 21:00.
	f.mustRun("shift", "move", s.ID, "--start=19:00")
	got, _ := f.store.GetShift(context.Background(), s.ID)
	if span(got) != "17:00-21:00" {
		t.Errorf("span after late move = %s, want 17:00-21:00", span(got))
	}

	if _, err := f.run("shift", "move", s.ID, "--date=thursday", "--start=08:00"); !errors.Is(err, shift.ErrShiftOverlap) {
		t.Errorf("move onto own shift error = %v, want ErrShiftOverlap", err)
	}
	if _, err := f.run("shift", "move", s.ID); err == nil {
		t.Error("move without --date or --start succeeded")
	}

	// Moving across weeks loads both weeks.
	f.mustRun("shift", "move", s.ID, "--date=next-monday", "--start=07:00")
	got, _ = f.store.GetShift(context.Background(), s.ID)
	if got.DayKey() != "2025-01-13" || span(got) != "07:00-11:00" {
		t.Errorf("after cross-week move = %s %s, want 2025-01-13 07:00-11:00", got.DayKey(), span(got))
	}
}

func TestShiftNotesAndDelete(t *testing.T) {
	f := newCLIFixture(t)
	ana := f.addEmployee("Ana")
	s := f.addShift(ana, "2025-01-06", "09:00", "13:00")

	f.mustRun("shift", "notes", s.ID, "opens the shop")
	got, _ := f.store.GetShift(context.Background(), s.ID)
	if got.Notes != "opens the shop" {
		t.Errorf("notes = %q, want %q", got.Notes, "opens the shop")
	}

	out := f.mustRun("shift", "notes", s.ID, "opens the shop")
	if !strings.Contains(out, "unchanged") {
		t.Errorf("same notes output = %q, want unchanged", out)
	}

	f.mustRun("shift", "notes", s.ID)
	got, _ = f.store.GetShift(context.Background(), s.ID)
	if got.Notes != "" {
		t.Errorf("notes after clear = %q, want empty", got.Notes)
	}

	out = f.mustRun("shift", "rm", s.ID)
	if !strings.Contains(out, "Deleted shift "+s.ID) {
		t.Errorf("delete output = %q", out)
	}
	if _, err := f.run("shift", "delete", s.ID); !errors.Is(err, shift.ErrShiftNotFound) {
		t.Errorf("second delete error = %v, want ErrShiftNotFound", err)
	}
}

func TestShiftList(t *testing.T) {
	f := newCLIFixture(t)
	ana := f.addEmployee("Ana")
	bo := f.addEmployee("Bo")
	f.addShift(bo, "2025-01-08", "12:00", "16:00")
	f.addShift(ana, "2025-01-08", "07:00", "11:00")
	f.addShift(ana, "2025-01-10", "09:00", "10:30")

	out := f.mustRun("shift", "list")
	if strings.Contains(out, "10:30") {
		t.Errorf("day list includes friday: %q", out)
	}
	first, second := strings.Index(out, "07:00-11:00"), strings.Index(out, "12:00-16:00")
	if first < 0 || second < 0 || first > second {
		t.Errorf("day list = %q, want both shifts in start order", out)
	}

	out = f.mustRun("shift", "list", "--week")
	for _, want := range []string{"Wed Jan 8", "Fri Jan 10", "1h30m"} {
		if !strings.Contains(out, want) {
			t.Errorf("week list missing %q:\n%s", want, out)
		}
	}

	out = f.mustRun("shift", "list", "--date=2025-02-01")
	if !strings.Contains(out, "No shifts found.") {
		t.Errorf("empty list = %q", out)
	}
}

func TestWeekCommand(t *testing.T) {
	f := newCLIFixture(t)
	ana := f.addEmployee("Ana")
	bo := f.addEmployee("Bo")
	f.addShift(ana, "2025-01-06", "09:00", "13:00")
	f.addShift(ana, "2025-01-07", "09:00", "17:00")
	f.addShift(bo, "2025-01-12", "10:00", "12:00")
	if err := f.store.SetEmployeeStatus(context.Background(), bo.ID, shift.StatusInactive); err != nil {
		t.Fatal(err)
	}

	out := f.mustRun("week", "--no-color")
	for _, want := range []string{
		"WEEK: Mon Jan 6 - Sun Jan 12, 2025",
		"no shifts",
		"Bo (inactive)",
		"12h",
		"Total",
		"Mon 1  Tue 1  Wed 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("week output missing %q:\n%s", want, out)
		}
	}

	out = f.mustRun("week", "--plain", "--date=next-monday")
	if !strings.HasPrefix(out, "Week of Mon 13 Jan 2025") {
		t.Errorf("plain week = %q", out)
	}

	var copied string
	clipboardWrite = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	out = f.mustRun("week", "--copy")
	if !strings.Contains(out, "Copied 3 shifts to clipboard") {
		t.Errorf("copy output = %q", out)
	}
	if !strings.Contains(copied, "09:00-17:00  Ana") {
		t.Errorf("copied text = %q", copied)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rota", "config.toml")

	in := strings.NewReader("y\n08:00\n20:00\n5\n\n180\n\nlatte\nnope\n\n3\n")
	var out bytes.Buffer
	if err := runConfigInteractive(path, in, &out); err != nil {
		t.Fatalf("runConfigInteractive() error = %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Creating with default values") {
		t.Errorf("output = %q, want a new file notice", out.String())
	}
	if !strings.Contains(out.String(), `Invalid number "nope"`) {
		t.Errorf("output = %q, want the invalid number notice", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Schedule.DayStart != "08:00" || cfg.Schedule.DayEnd != "20:00" || cfg.Schedule.Days != 5 {
		t.Errorf("schedule = %+v", cfg.Schedule)
	}
	if cfg.Grid.MinutesPerSlot != 30 || cfg.Grid.DefaultShiftMinutes != 180 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if cfg.UI.Theme != "latte" || cfg.UI.RowsPerSlot != 2 || cfg.UI.DragThreshold != 3 {
		t.Errorf("ui = %+v", cfg.UI)
	}

	// Declining leaves the file alone.
	out.Reset()
	if err := runConfigInteractive(path, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runConfigInteractive() error = %v", err)
	}
	if strings.Contains(out.String(), "saved") {
		t.Errorf("declined edit saved the config: %q", out.String())
	}
}

func TestVersion(t *testing.T) {
	f := newCLIFixture(t)
	out := f.mustRun("version")
	if out != "rota dev (commit: none)\n" {
		t.Errorf("version = %q", out)
	}
}
