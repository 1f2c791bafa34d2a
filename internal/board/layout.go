package board

import (
	"math"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// Layout places the grid on screen. The first LabelWidth pixels of the grid
// hold the time labels; the rest is split evenly between Days columns.
type Layout struct {
	Left       float64
	Top        float64
	Width      float64 // including the label column
	LabelWidth float64
	Days       int
	WeekStart  time.Time // date of column 0
}

// Cell is one day column / slot row intersection.
type Cell struct {
	Day  int
	Slot int
}

// DayColumnWidth returns the width of one day column.
func (l Layout) DayColumnWidth() float64 {
	if l.Days <= 0 {
		return 0
	}
	return (l.Width - l.LabelWidth) / float64(l.Days)
}

// Date returns the date of day column i.
func (l Layout) Date(i int) time.Time {
	return dateutil.TruncateToDay(l.WeekStart).AddDate(0, 0, i)
}

// DayIndex returns the column of date, or -1 if it is not visible.
func (l Layout) DayIndex(date time.Time) int {
	d := dateutil.TruncateToDay(date)
	for i := 0; i < l.Days; i++ {
		if d.Equal(l.Date(i)) {
			return i
		}
	}
	return -1
}

// dayAt returns the day column under x, clamped to the visible days.
func (l Layout) dayAt(x float64) int {
	w := l.DayColumnWidth()
	if w <= 0 {
		return 0
	}
	i := int(math.Floor((x - l.Left - l.LabelWidth) / w))
	return clampInt(i, 0, l.Days-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
