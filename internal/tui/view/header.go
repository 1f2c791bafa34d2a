package view

import (
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// HeaderLabels builds one label per visible day and returns today's column,
// or -1 if today is not visible.
func HeaderLabels(weekStart time.Time, days int, today time.Time) ([]string, int) {
	labels := make([]string, 0, days)
	todayCol := -1
	today = dateutil.TruncateToDay(today)

	for i := 0; i < days; i++ {
		day := weekStart.AddDate(0, 0, i)
		labels = append(labels, day.Format("Mon 02"))
		if dateutil.TruncateToDay(day).Equal(today) {
			todayCol = i
		}
	}
	return labels, todayCol
}

// WeekTitle formats the visible date range, e.g. "06 Jan - 12 Jan 2025".
func WeekTitle(weekStart time.Time, days int) string {
	end := weekStart.AddDate(0, 0, max(days, 1)-1)
	if end.Year() != weekStart.Year() {
		return weekStart.Format("02 Jan 2006") + " - " + end.Format("02 Jan 2006")
	}
	return weekStart.Format("02 Jan") + " - " + end.Format("02 Jan 2006")
}
