package tui

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/shift"
)

// Test screen: 92x60 cells, seven 10-cell day columns starting at x=22,
// two rows per 30-minute slot from 07:00 with the grid body at y=2.
// Monday 2025-01-06 09:00 is the cell (22, 10).
var (
	monday  = time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	testNow = time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local)
)

const (
	testWidth  = 92
	testHeight = 60
)

// cellFor returns the top-left terminal cell of day d at minutes since midnight.
func cellFor(d, minutes int) (int, int) {
	return rosterWidth + labelWidth + d*10 + 3, headerRows + (minutes-7*60)/30*2
}

type memStore struct {
	shifts    map[string]*shift.Shift
	employees []*shift.Employee
	next      int
}

func newMemStore(employees ...*shift.Employee) *memStore {
	return &memStore{shifts: make(map[string]*shift.Shift), employees: employees}
}

func (s *memStore) put(sh shift.Shift) {
	s.shifts[sh.ID] = &sh
}

func (s *memStore) AddShift(_ context.Context, in shift.NewShift) (*shift.Shift, error) {
	s.next++
	sh := &shift.Shift{ID: fmt.Sprintf("s%d", s.next), EmployeeID: in.EmployeeID, Start: in.Start, End: in.End, Notes: in.Notes}
	s.shifts[sh.ID] = sh
	out := *sh
	return &out, nil
}

func (s *memStore) UpdateShift(_ context.Context, id string, p shift.Patch) (*shift.Shift, error) {
	sh, ok := s.shifts[id]
	if !ok {
		return nil, shift.ErrShiftNotFound
	}
	updated := p.Apply(*sh)
	s.shifts[id] = &updated
	out := updated
	return &out, nil
}

func (s *memStore) DeleteShift(_ context.Context, id string) (bool, error) {
	if _, ok := s.shifts[id]; !ok {
		return false, nil
	}
	delete(s.shifts, id)
	return true, nil
}

func (s *memStore) GetShift(_ context.Context, id string) (*shift.Shift, error) {
	sh, ok := s.shifts[id]
	if !ok {
		return nil, nil
	}
	out := *sh
	return &out, nil
}

func (s *memStore) ListShiftsByDateRange(_ context.Context, start, end time.Time) ([]*shift.Shift, error) {
	var out []*shift.Shift
	for _, sh := range s.shifts {
		if !sh.Start.Before(start) && sh.Start.Before(end.AddDate(0, 0, 1)) {
			cp := *sh
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *shift.Shift) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (s *memStore) CreateEmployee(_ context.Context, e *shift.Employee) error {
	s.employees = append(s.employees, e)
	return nil
}

func (s *memStore) GetEmployee(_ context.Context, id string) (*shift.Employee, error) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, shift.ErrEmployeeNotFound
}

func (s *memStore) ListEmployees(_ context.Context, activeOnly bool) ([]*shift.Employee, error) {
	var out []*shift.Employee
	for _, e := range s.employees {
		if !activeOnly || e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) SetEmployeeStatus(_ context.Context, id string, status shift.EmployeeStatus) error {
	for _, e := range s.employees {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return shift.ErrEmployeeNotFound
}

func (s *memStore) Close() error { return nil }

func testEmployees() []*shift.Employee {
	return []*shift.Employee{
		{ID: "ana", Name: "Ana", Status: shift.StatusActive},
		{ID: "bo", Name: "Bo", Status: shift.StatusActive},
		{ID: "cy", Name: "Cy", Status: shift.StatusInactive},
	}
}

func at(day, hour, minute int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.UI.Theme = "mocha"
	return cfg
}

// newTestModel builds a sized model with the week of monday loaded.
func newTestModel(t *testing.T, store *memStore) (Model, *string) {
	t.Helper()
	clip := new(string)
	m := New(store, testConfig(),
		WithNow(func() time.Time { return testNow }),
		WithClipboard(func(s string) error {
			*clip = s
			return nil
		}),
	)
	m = step(t, m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	m = feed(t, m, m.Init())
	if m.loading {
		t.Fatal("model still loading after Init")
	}
	return m, clip
}

// step applies one message and discards the returned command.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, _ = apply(t, m, msg)
	return m
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// feed runs cmd and applies every message it produces.
func feed(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range drain(cmd) {
		m = step(t, m, msg)
	}
	return m
}

// drain runs cmd and any batched commands. Commands that do not return
// quickly, like status timers, are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, drain(c)...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drag presses, moves and releases, then runs the resulting commands.
func drag(t *testing.T, m Model, fromX, fromY, toX, toY int) Model {
	t.Helper()
	m = step(t, m, press(fromX, fromY))
	m = step(t, m, motion(toX, toY))
	m, cmd := apply(t, m, release(toX, toY))
	return feed(t, m, cmd)
}
