// Package journal models the hand-edited weekly journal: one markdown
// document per ISO calendar week, seven day sections, and the tolerant
// parsing that reconciles human edits back into the task store.
package journal

import (
	"fmt"
	"time"
)

// dayKeyLayout keys day sections by calendar date.
const dayKeyLayout = "2006-01-02"

// WeekStart returns the Monday of the given ISO week at midnight.
// January 4th always falls in ISO week 1; walking back to that week's
// Monday and forward week-1 weeks yields the start of any week.
func WeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	monday := jan4.AddDate(0, 0, -mondayOffset(jan4))
	return monday.AddDate(0, 0, (week-1)*7)
}

// mondayOffset returns how many days date lies after its week's Monday.
func mondayOffset(date time.Time) int {
	// time.Weekday counts Sunday as 0; ISO weeks start on Monday.
	return (int(date.Weekday()) + 6) % 7
}

// CurrentWeek returns the ISO year and week number for the current
// moment.
func CurrentWeek() (int, int) {
	return time.Now().ISOWeek()
}

// WeekForDate returns the ISO year and week number containing date.
func WeekForDate(date time.Time) (int, int) {
	return date.ISOWeek()
}

// DayKey returns the storage key for a calendar date.
func DayKey(date time.Time) string {
	return date.Format(dayKeyLayout)
}

// DayName returns the weekday name (Monday, Tuesday, ...).
func DayName(date time.Time) string {
	return date.Weekday().String()
}

// FileName returns the journal filename for an ISO (year, week) pair.
func FileName(year, week int) string {
	return fmt.Sprintf("%d-W%02d.md", year, week)
}

// SummaryFileName returns the standalone summary filename for an ISO
// (year, week) pair.
func SummaryFileName(year, week int) string {
	return fmt.Sprintf("%d-W%02d-summary.md", year, week)
}

// WeekLabel returns the week identifier used in backup metadata,
// e.g. "2026-W02".
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}
