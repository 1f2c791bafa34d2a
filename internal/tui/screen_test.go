package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/shift"
)

func TestScreenLayout(t *testing.T) {
	m, _ := newTestModel(t, newMemStore())
	s := m.screen()

	if s.colW != 10 {
		t.Errorf("colW = %d, want 10", s.colW)
	}
	if s.totalRows != 56 {
		t.Errorf("totalRows = %d, want 56", s.totalRows)
	}
	if s.bodyH != testHeight-headerRows-footerRows {
		t.Errorf("bodyH = %d", s.bodyH)
	}
	if got := s.dayLeft(2); got != 42 {
		t.Errorf("dayLeft(2) = %d, want 42", got)
	}
}

func TestScrollClampsAndMovesBoardLayout(t *testing.T) {
	m, _ := newTestModel(t, newMemStore())
	m = step(t, m, tea.WindowSizeMsg{Width: testWidth, Height: 24})

	s := m.screen()
	if s.maxScroll() != 56-20 {
		t.Fatalf("maxScroll = %d, want 36", s.maxScroll())
	}
	for range 40 {
		m = step(t, m, key("j"))
	}
	if m.scroll != s.maxScroll() {
		t.Errorf("scroll = %d, want %d", m.scroll, s.maxScroll())
	}
	if got, want := m.board.Layout().Top, float64(headerRows-m.scroll); got != want {
		t.Errorf("board top = %v, want %v", got, want)
	}
	m = step(t, m, key("k"))
	if m.scroll != s.maxScroll()-2 {
		t.Errorf("scroll after k = %d", m.scroll)
	}
}

func TestPointerOutsideBodyIsOffGrid(t *testing.T) {
	m, _ := newTestModel(t, newMemStore())
	s := m.screen()

	tests := []struct {
		name string
		y    int
		off  bool
	}{
		{name: "title", y: 0, off: true},
		{name: "day header", y: 1, off: true},
		{name: "first body row", y: headerRows, off: false},
		{name: "footer", y: testHeight - 1, off: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.pointer(30, tt.y)
			if got := p.Y == offGrid; got != tt.off {
				t.Errorf("pointer(30, %d).Y = %v, offGrid %v", tt.y, p.Y, tt.off)
			}
		})
	}
}

func TestLaneSpan(t *testing.T) {
	tests := []struct {
		colW, lane, lanes int
		left, width       int
	}{
		{colW: 10, lane: 0, lanes: 1, left: 0, width: 10},
		{colW: 10, lane: 0, lanes: 2, left: 0, width: 5},
		{colW: 10, lane: 1, lanes: 2, left: 5, width: 5},
		{colW: 10, lane: 2, lanes: 3, left: 6, width: 4},
	}
	for _, tt := range tests {
		left, w := laneSpan(tt.colW, tt.lane, tt.lanes)
		if left != tt.left || w != tt.width {
			t.Errorf("laneSpan(%d, %d, %d) = %d, %d; want %d, %d",
				tt.colW, tt.lane, tt.lanes, left, w, tt.left, tt.width)
		}
	}
}

func TestLayoutBlocksAssignsLanes(t *testing.T) {
	m, _ := newTestModel(t, newMemStore())
	shifts := []shift.Shift{
		{ID: "a", EmployeeID: "ana", Start: at(0, 9, 0), End: at(0, 13, 0)},
		{ID: "b", EmployeeID: "bo", Start: at(0, 11, 0), End: at(0, 15, 0)},
		{ID: "c", EmployeeID: "cy", Start: at(0, 13, 0), End: at(0, 14, 0)},
		{ID: "d", EmployeeID: "ana", Start: at(2, 9, 0), End: at(2, 10, 0)},
	}
	days := layoutBlocks(shifts, m.board.Layout(), m.board.Geometry(), nil, func(string) bool { return false })

	lanes := map[string]int{}
	for _, b := range days[0] {
		lanes[b.shift.ID] = b.lane
		if b.lanes != 2 {
			t.Errorf("%s: lanes = %d, want 2", b.shift.ID, b.lanes)
		}
	}
	if lanes["a"] != 0 || lanes["b"] != 1 || lanes["c"] != 0 {
		t.Errorf("lanes = %v, want a:0 b:1 c:0", lanes)
	}
	if len(days[2]) != 1 || days[2][0].lanes != 1 {
		t.Errorf("wednesday = %+v, want one single-lane block", days[2])
	}
	if b := days[0][0]; b.top != 8 || b.height != 16 {
		t.Errorf("block a top/height = %d/%d, want 8/16", b.top, b.height)
	}
}

func TestLayoutBlocksMarksPreviewAndBusy(t *testing.T) {
	m, _ := newTestModel(t, newMemStore())
	shifts := []shift.Shift{
		{ID: "a", EmployeeID: "ana", Start: at(0, 9, 0), End: at(0, 13, 0)},
		{ID: "b", EmployeeID: "bo", Start: at(1, 9, 0), End: at(1, 13, 0)},
	}
	pv := &board.Preview{ShiftID: "a"}
	days := layoutBlocks(shifts, m.board.Layout(), m.board.Geometry(), pv, func(id string) bool { return id == "b" })

	if !days[0][0].preview || days[0][0].busy {
		t.Errorf("a = %+v, want preview only", days[0][0])
	}
	if days[1][0].preview || !days[1][0].busy {
		t.Errorf("b = %+v, want busy only", days[1][0])
	}
}

func TestHitTest(t *testing.T) {
	store := newMemStore(testEmployees()...)
	store.put(shift.Shift{ID: "a1", EmployeeID: "ana", Start: at(0, 9, 0), End: at(0, 11, 0)})
	store.put(shift.Shift{ID: "b1", EmployeeID: "bo", Start: at(0, 10, 0), End: at(0, 12, 0)})
	m, _ := newTestModel(t, store)

	x, y := cellFor(0, 9*60)
	tests := []struct {
		name string
		x, y int
		want board.Target
		ok   bool
	}{
		{name: "first chip", x: 1, y: headerRows, want: board.Target{Kind: board.TargetEmployee, ID: "ana"}, ok: true},
		{name: "second chip", x: 1, y: headerRows + 1, want: board.Target{Kind: board.TargetEmployee, ID: "bo"}, ok: true},
		{name: "empty roster row", x: 1, y: headerRows + 5},
		{name: "header", x: x, y: 1},
		{name: "label column", x: rosterWidth + 1, y: y},
		{name: "left lane body", x: rosterWidth + labelWidth + 1, y: y, want: board.Target{Kind: board.TargetShiftBody, ID: "a1"}, ok: true},
		{name: "left lane handle", x: rosterWidth + labelWidth + 1, y: y + 7, want: board.Target{Kind: board.TargetResizeHandle, ID: "a1"}, ok: true},
		{name: "right lane body", x: rosterWidth + labelWidth + 7, y: y + 4, want: board.Target{Kind: board.TargetShiftBody, ID: "b1"}, ok: true},
		{name: "right lane above shift", x: rosterWidth + labelWidth + 7, y: y},
		{name: "empty day", x: x + 30, y: y},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.hitTest(tt.x, tt.y)
			if ok != tt.ok || got != tt.want {
				t.Errorf("hitTest(%d, %d) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestViewRendersWeek(t *testing.T) {
	store := newMemStore(testEmployees()...)
	store.put(shift.Shift{ID: "a1", EmployeeID: "ana", Start: at(0, 9, 0), End: at(0, 13, 0), Notes: "keys"})
	m, _ := newTestModel(t, store)

	out := ansi.Strip(m.View())
	lines := strings.Split(out, "\n")
	if len(lines) != testHeight {
		t.Fatalf("view has %d lines, want %d", len(lines), testHeight)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != testWidth {
			t.Errorf("line %d width = %d, want %d", i, w, testWidth)
		}
	}

	for _, want := range []string{"rota", "06 Jan - 12 Jan 2025", "Staff", "Mon 06", "Wed 08", "07:00", "● Ana", "1 shifts · 4h"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "● Cy") {
		t.Error("inactive employee shown in roster")
	}

	// Rows 8-10 of the grid carry name, times and notes of the block.
	dayCol := func(row int) string {
		return ansi.Cut(lines[headerRows+row], rosterWidth+labelWidth, rosterWidth+labelWidth+10)
	}
	if got := dayCol(8); !strings.Contains(got, "Ana") {
		t.Errorf("block first row = %q", got)
	}
	if got := dayCol(9); !strings.Contains(got, "09:00") {
		t.Errorf("block second row = %q", got)
	}
	if got := dayCol(10); !strings.Contains(got, "keys") {
		t.Errorf("block third row = %q", got)
	}
	if got := dayCol(23); !strings.Contains(got, "╌") {
		t.Errorf("block handle row = %q", got)
	}
}

func TestViewShowsGhostWhileCreating(t *testing.T) {
	m, _ := newTestModel(t, newMemStore(testEmployees()...))

	x, y := cellFor(1, 9*60)
	m = step(t, m, press(1, headerRows))
	m = step(t, m, motion(x, y))

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "+ Ana") {
		t.Error("ghost block not rendered")
	}
	if !strings.Contains(out, "Placing Ana") {
		t.Error("placing status not rendered")
	}
}

func TestViewShowsModal(t *testing.T) {
	store := newMemStore(testEmployees()...)
	store.put(shift.Shift{ID: "a1", EmployeeID: "ana", Start: at(0, 9, 0), End: at(0, 13, 0)})
	m, _ := newTestModel(t, store)

	m = m.openEditor("a1")
	out := ansi.Strip(m.View())
	for _, want := range []string{"Shift", "Monday 06 Jan 2025", "09:00-13:00", "4h", "[d] delete"} {
		if !strings.Contains(out, want) {
			t.Errorf("editor missing %q", want)
		}
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := New(newMemStore(), testConfig())
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}
