package tui

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
)

const (
	rosterWidth = 16 // employee chips
	labelWidth  = 6  // "07:00 "
	headerRows  = 2  // title and day names
	footerRows  = 2  // status and help
	minColWidth = 6
)

// offGrid is the pointer Y reported for rows outside the grid body, so a
// scrolled grid never maps the header or footer onto a slot.
const offGrid = -1 << 20

// screen is the terminal layout in cells. The board works in the same
// units: one pixel is one cell and a slot is rowsPerSlot rows tall.
type screen struct {
	width, height int
	days          int
	colW          int
	bodyTop       int
	bodyH         int
	rowsPerSlot   int
	totalRows     int
	scroll        int
}

func (m Model) screen() screen {
	geo := m.board.Geometry()
	rows := max(1, m.config.UI.RowsPerSlot)
	days := max(1, m.config.Schedule.Days)

	s := screen{
		width:       m.width,
		height:      m.height,
		days:        days,
		colW:        max(minColWidth, (m.width-rosterWidth-labelWidth)/days),
		bodyTop:     headerRows,
		bodyH:       max(0, m.height-headerRows-footerRows),
		rowsPerSlot: rows,
		totalRows:   geo.SlotCount() * rows,
	}
	s.scroll = max(0, min(m.scroll, s.maxScroll()))
	return s
}

func (s screen) maxScroll() int {
	return max(0, s.totalRows-s.bodyH)
}

func (s screen) dayLeft(d int) int {
	return rosterWidth + labelWidth + d*s.colW
}

func (s screen) gridWidth() int {
	return labelWidth + s.days*s.colW
}

func (s screen) inBody(y int) bool {
	return y >= s.bodyTop && y < s.bodyTop+s.bodyH
}

// gridRow converts a terminal row to a row of the full grid.
func (s screen) gridRow(y int) int {
	return y - s.bodyTop + s.scroll
}

func (s screen) boardLayout(weekStart time.Time) board.Layout {
	return board.Layout{
		Left:       rosterWidth,
		Top:        float64(s.bodyTop - s.scroll),
		Width:      float64(s.gridWidth()),
		LabelWidth: labelWidth,
		Days:       s.days,
		WeekStart:  weekStart,
	}
}

// pointer converts a terminal cell to board coordinates.
func (s screen) pointer(x, y int) board.Pointer {
	p := board.Pointer{X: float64(x), Y: float64(y)}
	if !s.inBody(y) {
		p.Y = offGrid
	}
	return p
}

// laneSpan returns the left offset and width of a lane inside a day column.
func laneSpan(colW, lane, lanes int) (int, int) {
	w := colW / lanes
	left := lane * w
	if lane == lanes-1 {
		w = colW - left
	}
	return left, w
}

// block is a shift placed on the screen grid. Rows count from the
// opening-time row of the full grid.
type block struct {
	shift   shift.Shift
	day     int
	lane    int
	lanes   int
	top     int
	height  int
	preview bool
	busy    bool
}

func (b block) contains(row int) bool {
	return row >= b.top && row < b.top+b.height
}

// handleRow reports whether row is the block's resize handle. Blocks one
// row tall have no handle row.
func (b block) handleRow(row int) bool {
	return b.height >= 2 && row == b.top+b.height-1
}

// layoutBlocks places the display shifts into day columns. Shifts of
// different employees that overlap in time get side-by-side lanes.
func layoutBlocks(shifts []shift.Shift, l board.Layout, geo *grid.Geometry, pv *board.Preview, busy func(string) bool) [][]block {
	days := make([][]block, max(l.Days, 0))
	for _, s := range shifts {
		d := l.DayIndex(s.Start)
		if d < 0 {
			continue
		}
		r := geo.RectFor(&s)
		days[d] = append(days[d], block{
			shift:   s,
			day:     d,
			top:     int(math.Round(r.Top)),
			height:  max(1, int(math.Round(r.Height))),
			preview: pv != nil && pv.ShiftID == s.ID,
			busy:    busy(s.ID),
		})
	}

	for d := range days {
		blocks := days[d]
		slices.SortFunc(blocks, func(a, b block) int {
			if c := a.shift.Start.Compare(b.shift.Start); c != 0 {
				return c
			}
			return strings.Compare(a.shift.EmployeeID, b.shift.EmployeeID)
		})
		var laneEnds []int
		for i := range blocks {
			lane := slices.IndexFunc(laneEnds, func(end int) bool { return end <= blocks[i].top })
			if lane < 0 {
				lane = len(laneEnds)
				laneEnds = append(laneEnds, 0)
			}
			laneEnds[lane] = blocks[i].top + blocks[i].height
			blocks[i].lane = lane
		}
		for i := range blocks {
			blocks[i].lanes = max(1, len(laneEnds))
		}
	}
	return days
}

func (m Model) blocks(s screen) [][]block {
	var pv *board.Preview
	if p, ok := m.board.Preview(); ok {
		pv = &p
	}
	return layoutBlocks(m.board.Display(), s.boardLayout(m.weekStart), m.board.Geometry(), pv, m.board.Busy)
}

// hitTest finds the draggable element under a terminal cell.
func (m Model) hitTest(x, y int) (board.Target, bool) {
	s := m.screen()
	if !s.inBody(y) {
		return board.Target{}, false
	}

	if x < rosterWidth {
		chips := m.activeEmployees()
		i := y - s.bodyTop
		if i < len(chips) {
			return board.Target{Kind: board.TargetEmployee, ID: chips[i].ID}, true
		}
		return board.Target{}, false
	}

	left := s.dayLeft(0)
	if x < left || x >= left+s.days*s.colW {
		return board.Target{}, false
	}
	d := (x - left) / s.colW
	row := s.gridRow(y)
	dx := x - s.dayLeft(d)

	for _, b := range m.blocks(s)[d] {
		laneLeft, laneW := laneSpan(s.colW, b.lane, b.lanes)
		if dx < laneLeft || dx >= laneLeft+laneW || !b.contains(row) {
			continue
		}
		if b.handleRow(row) {
			return board.Target{Kind: board.TargetResizeHandle, ID: b.shift.ID}, true
		}
		return board.Target{Kind: board.TargetShiftBody, ID: b.shift.ID}, true
	}
	return board.Target{}, false
}
