package journal

import (
	"time"
)

// DaySection is one calendar day within the weekly journal. Day
// identity is keyed by date; a week always renders all seven sections.
type DaySection struct {
	Date time.Time
	// Planned holds task ids in document order.
	Planned []string
	// Completed is the informational subset of Planned whose checkbox
	// is ticked.
	Completed []string
	// Blocked holds task ids listed in the day's Blocked section.
	Blocked []string
	// Notes is the day's free-text notes.
	Notes string
}

// WeeklySummary aggregates one week. It is derived from the day
// sections and task statuses on demand, never independently
// authoritative.
type WeeklySummary struct {
	WeekStart       time.Time
	WeekEnd         time.Time
	TasksCompleted  []string
	TasksInProgress []string
	Blockers        []string
	Notes           string
}

// CompletedCount returns the number of completed tasks.
func (s *WeeklySummary) CompletedCount() int {
	return len(s.TasksCompleted)
}

// CompletionRate returns the completion percentage against a planned
// total.
func (s *WeeklySummary) CompletionRate(totalPlanned int) float64 {
	if totalPlanned == 0 {
		return 0
	}
	return float64(len(s.TasksCompleted)) / float64(totalPlanned) * 100
}

// WeeklyJournal is the document for one ISO calendar week. It owns the
// rendering and parsing of its own markdown but not task identity:
// tasks are looked up by id from an externally supplied mapping.
type WeeklyJournal struct {
	Year int
	Week int

	WeekStart time.Time
	WeekEnd   time.Time

	Days    map[string]*DaySection
	Summary *WeeklySummary
}

// New creates the journal for an ISO (year, week) pair. Day sections
// are created lazily; rendering always emits all seven.
func New(year, week int) *WeeklyJournal {
	start := WeekStart(year, week)
	return &WeeklyJournal{
		Year:      year,
		Week:      week,
		WeekStart: start,
		WeekEnd:   start.AddDate(0, 0, 6),
		Days:      make(map[string]*DaySection),
	}
}

// ForDate creates the journal for the ISO week containing date.
func ForDate(date time.Time) *WeeklyJournal {
	year, week := WeekForDate(date)
	return New(year, week)
}

// FileName returns this journal's filename.
func (j *WeeklyJournal) FileName() string {
	return FileName(j.Year, j.Week)
}

// SummaryFileName returns this journal's standalone summary filename.
func (j *WeeklyJournal) SummaryFileName() string {
	return SummaryFileName(j.Year, j.Week)
}

// Label returns the week identifier, e.g. "2026-W02".
func (j *WeeklyJournal) Label() string {
	return WeekLabel(j.Year, j.Week)
}

// AddDaySection returns the day section for date, creating it when
// missing.
func (j *WeeklyJournal) AddDaySection(date time.Time) *DaySection {
	key := DayKey(date)
	if day, ok := j.Days[key]; ok {
		return day
	}
	day := &DaySection{Date: date}
	j.Days[key] = day
	return day
}

// DaySectionFor returns the day section for date, or nil.
func (j *WeeklyJournal) DaySectionFor(date time.Time) *DaySection {
	return j.Days[DayKey(date)]
}

// dayDate returns the date of the i-th day of the week (0 = Monday).
func (j *WeeklyJournal) dayDate(i int) time.Time {
	return j.WeekStart.AddDate(0, 0, i)
}

// contains reports whether ids already holds id.
func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
