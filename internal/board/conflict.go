package board

import (
	"time"

	"github.com/javiermolinar/rota/internal/shift"
)

// WarnSameEmployeeOverlap is the message key emitted when a commit is
// rejected because the employee already works during that interval.
const WarnSameEmployeeOverlap = "same-employee overlap"

// FindConflict returns the first shift of employeeID on dayKey whose interval
// intersects [start, end), ignoring excludeID. Returns nil if there is none.
func FindConflict(shifts []shift.Shift, employeeID, dayKey string, start, end time.Time, excludeID string) *shift.Shift {
	for i := range shifts {
		s := &shifts[i]
		if s.EmployeeID != employeeID || (excludeID != "" && s.ID == excludeID) {
			continue
		}
		if s.DayKey() != dayKey {
			continue
		}
		if shift.IntervalsOverlap(start, end, s.Start, s.End) {
			return s
		}
	}
	return nil
}

// HasConflict reports whether [start, end) overlaps any other shift of the
// same employee on the same day. Back-to-back shifts do not conflict.
func HasConflict(shifts []shift.Shift, employeeID, dayKey string, start, end time.Time, excludeID string) bool {
	return FindConflict(shifts, employeeID, dayKey, start, end, excludeID) != nil
}
