// Package grid maps a business-hours window onto a fixed-height column of
// slots and converts between pixel offsets and clock times.
//
// Pixels are whatever unit the input source reports: browser pixels,
// terminal rows, or test numbers. Only the ratios matter.
package grid

import (
	"math"
	"time"

	"github.com/javiermolinar/rota/internal/shift"
)

const (
	// DefaultSlotHeight is the height of one slot in pixels.
	DefaultSlotHeight = 48
	// DefaultMinutesPerSlot is the length of one slot.
	DefaultMinutesPerSlot = shift.SlotMinutes
	// DefaultMinBlockHeight keeps very short blocks legible.
	DefaultMinBlockHeight = 28
)

// Config holds the scale of the grid.
type Config struct {
	SlotHeight     float64 // pixels per slot
	MinutesPerSlot int     // minutes per slot
	MinBlockHeight float64 // render floor for block height
}

// DefaultConfig returns the 48px / 30min scale.
func DefaultConfig() Config {
	return Config{
		SlotHeight:     DefaultSlotHeight,
		MinutesPerSlot: DefaultMinutesPerSlot,
		MinBlockHeight: DefaultMinBlockHeight,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SlotHeight <= 0 {
		c.SlotHeight = d.SlotHeight
	}
	if c.MinutesPerSlot <= 0 {
		c.MinutesPerSlot = d.MinutesPerSlot
	}
	if c.MinBlockHeight < 0 {
		c.MinBlockHeight = 0
	}
	return c
}

// TimeSlot is one row of the grid.
type TimeSlot struct {
	Hour   int
	Minute int
	Label  string // 12-hour clock, e.g. "7:30 AM"
}

// Minutes returns the slot start in minutes since midnight.
func (s TimeSlot) Minutes() int {
	return s.Hour*60 + s.Minute
}

// Rect is the vertical placement of a block within a day column.
type Rect struct {
	Top    float64
	Height float64
}

// Geometry converts between time and position for one business-hours window.
type Geometry struct {
	cfg   Config
	hours shift.TimeRange
	slots []TimeSlot
}

// New creates a Geometry. Zero config fields take defaults and an unset
// window falls back to shift.DefaultTimeRange.
func New(cfg Config, hours shift.TimeRange) *Geometry {
	cfg = cfg.withDefaults()
	hours = hours.OrDefault()
	return &Geometry{
		cfg:   cfg,
		hours: hours,
		slots: slotsFor(hours.StartMinutes, hours.EndMinutes, cfg.MinutesPerSlot),
	}
}

// Config returns the grid scale.
func (g *Geometry) Config() Config {
	return g.cfg
}

// Hours returns the business-hours window.
func (g *Geometry) Hours() shift.TimeRange {
	return g.hours
}

// Slots returns the rows of the grid.
func (g *Geometry) Slots() []TimeSlot {
	out := make([]TimeSlot, len(g.slots))
	copy(out, g.slots)
	return out
}

// SlotCount returns the number of rows.
func (g *Geometry) SlotCount() int {
	return len(g.slots)
}

// Height returns the drawable height of a day column.
func (g *Geometry) Height() float64 {
	return float64(len(g.slots)) * g.cfg.SlotHeight
}

// SlotsFor lists one TimeSlot per 30-minute boundary in [startMinutes, endMinutes).
func SlotsFor(startMinutes, endMinutes int) []TimeSlot {
	return slotsFor(startMinutes, endMinutes, DefaultMinutesPerSlot)
}

func slotsFor(startMinutes, endMinutes, step int) []TimeSlot {
	if step <= 0 || endMinutes <= startMinutes {
		return nil
	}
	slots := make([]TimeSlot, 0, (endMinutes-startMinutes)/step+1)
	for m := startMinutes; m < endMinutes; m += step {
		slots = append(slots, TimeSlot{Hour: m / 60, Minute: m % 60, Label: Label(m)})
	}
	return slots
}

// Label formats minutes since midnight on a 12-hour clock.
func Label(minutes int) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute).
		Format("3:04 PM")
}

// Snap rounds minutes to the nearest slot boundary; a half slot rounds up.
func (g *Geometry) Snap(minutes int) int {
	return snap(minutes, g.cfg.MinutesPerSlot)
}

// Snap rounds minutes to the nearest 30-minute boundary.
func Snap(minutes int) int {
	return snap(minutes, DefaultMinutesPerSlot)
}

func snap(minutes, step int) int {
	return int(math.Floor(float64(minutes)/float64(step)+0.5)) * step
}

// SnapTime snaps the time-of-day of t, keeping its date.
func (g *Geometry) SnapTime(t time.Time) time.Time {
	return shift.At(t, g.Snap(shift.MinutesOfDay(t)))
}

// TimeToOffset converts minutes since midnight to a pixel offset from the top.
func (g *Geometry) TimeToOffset(minutes int) float64 {
	return float64(minutes-g.hours.StartMinutes) / float64(g.cfg.MinutesPerSlot) * g.cfg.SlotHeight
}

// OffsetToTimeOfDay converts a pixel offset from the top to snapped minutes since midnight.
func (g *Geometry) OffsetToTimeOfDay(offset float64) int {
	raw := float64(g.hours.StartMinutes) + offset/g.cfg.SlotHeight*float64(g.cfg.MinutesPerSlot)
	return g.Snap(int(math.Round(raw)))
}

// SlotAt returns the slot index containing the offset, clamped to the grid.
func (g *Geometry) SlotAt(offset float64) int {
	i := int(math.Floor(offset / g.cfg.SlotHeight))
	return clamp(i, 0, len(g.slots)-1)
}

// SlotMinutes returns the start of slot i in minutes since midnight.
func (g *Geometry) SlotMinutes(i int) int {
	return g.hours.StartMinutes + i*g.cfg.MinutesPerSlot
}

// SlotIndex returns the slot containing the given minutes since midnight.
func (g *Geometry) SlotIndex(minutes int) int {
	return (minutes - g.hours.StartMinutes) / g.cfg.MinutesPerSlot
}

// DeltaMinutes converts a vertical pointer delta into whole minutes.
func (g *Geometry) DeltaMinutes(dy float64) int {
	return int(math.Round(dy / g.cfg.SlotHeight * float64(g.cfg.MinutesPerSlot)))
}

// RectFor places a shift in its day column. The height is floored at
// MinBlockHeight for rendering only.
func (g *Geometry) RectFor(s *shift.Shift) Rect {
	top := g.TimeToOffset(shift.MinutesOfDay(s.Start))
	bottom := g.TimeToOffset(shift.MinutesOfDay(s.Start) + s.Duration())
	return Rect{Top: top, Height: math.Max(bottom-top, g.cfg.MinBlockHeight)}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
