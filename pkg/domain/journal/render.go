package journal

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

// Fixed section markers. Parsing keys off these exact prefixes, so they
// are part of the hand-editable wire format.
const (
	markerPlanned    = "### 📋 Planned"
	markerInProgress = "### 🔄 In Progress"
	markerBlocked    = "### 🚫 Blocked"
	markerCompleted  = "### ✅ Completed"
	markerNotes      = "### 📝 Notes"
	markerSummary    = "## 📊 Week Summary"

	placeholderTasks = "<!-- Add tasks for today -->"
	placeholderNotes = "<!-- Add notes for the day -->"
)

// Render produces the canonical markdown for the journal. It is pure
// and deterministic given the same task mapping and day-section state.
func (j *WeeklyJournal) Render(tasksByID map[string]*domain.Task) string {
	var b strings.Builder

	weekRange := fmt.Sprintf("%s - %s", j.WeekStart.Format("Jan 02"), j.WeekEnd.Format("Jan 02, 2006"))
	fmt.Fprintf(&b, "# Week %d - %d (%s)\n\n", j.Week, j.Year, weekRange)

	for i := 0; i < 7; i++ {
		date := j.dayDate(i)
		fmt.Fprintf(&b, "## %s, %s\n\n", DayName(date), date.Format("Jan 02"))

		day := j.Days[DayKey(date)]
		if day == nil {
			day = &DaySection{Date: date}
		}

		j.renderDay(&b, day, tasksByID)

		b.WriteString("---\n\n")
	}

	if j.Summary != nil {
		j.renderSummary(&b, weekRange, tasksByID)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (j *WeeklyJournal) renderDay(b *strings.Builder, day *DaySection, tasksByID map[string]*domain.Task) {
	b.WriteString(markerPlanned + "\n")
	if len(day.Planned) > 0 {
		for _, id := range day.Planned {
			task, ok := tasksByID[id]
			if !ok {
				continue
			}
			checkbox := " "
			if contains(day.Completed, id) {
				checkbox = "x"
			}
			fmt.Fprintf(b, "- [%s] %s: %s (%s, %s)\n", checkbox, id, task.Title, task.Type, task.Priority)
		}
	} else {
		b.WriteString(placeholderTasks + "\n")
	}
	b.WriteString("\n")

	// Multi-day tasks: planned, not yet completed, in progress.
	var inProgress []string
	for _, id := range day.Planned {
		task, ok := tasksByID[id]
		if ok && task.Status == domain.StatusInProgress && !contains(day.Completed, id) {
			inProgress = append(inProgress, id)
		}
	}
	if len(inProgress) > 0 {
		b.WriteString(markerInProgress + "\n")
		for _, id := range inProgress {
			task := tasksByID[id]
			fmt.Fprintf(b, "- %s: %s\n", id, task.Title)
			if task.NotifyAt != nil {
				fmt.Fprintf(b, "  - ETA: %s\n", task.NotifyAt.Format("Jan 02, 15:04"))
			}
		}
		b.WriteString("\n")
	}

	if len(day.Blocked) > 0 {
		b.WriteString(markerBlocked + "\n")
		for _, id := range day.Blocked {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(b, "- %s: %s\n", id, task.Title)
			}
		}
		b.WriteString("\n")
	}

	if len(day.Completed) > 0 {
		b.WriteString(markerCompleted + "\n")
		for _, id := range day.Completed {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(b, "- %s: %s\n", id, task.Title)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(markerNotes + "\n")
	if day.Notes != "" {
		b.WriteString(day.Notes + "\n")
	} else {
		b.WriteString(placeholderNotes + "\n")
	}
	b.WriteString("\n")
}

func (j *WeeklyJournal) renderSummary(b *strings.Builder, weekRange string, tasksByID map[string]*domain.Task) {
	s := j.Summary

	b.WriteString(markerSummary + "\n\n")
	fmt.Fprintf(b, "**Week:** %s\n", weekRange)
	fmt.Fprintf(b, "**Completed:** %d tasks\n", len(s.TasksCompleted))
	fmt.Fprintf(b, "**In Progress:** %d tasks\n\n", len(s.TasksInProgress))

	if len(s.TasksCompleted) > 0 {
		b.WriteString("### ✅ Accomplished This Week\n")
		for _, id := range s.TasksCompleted {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(b, "- %s\n", task.Title)
			}
		}
		b.WriteString("\n")
	}

	if len(s.TasksInProgress) > 0 {
		b.WriteString("### 🔄 Still In Progress\n")
		for _, id := range s.TasksInProgress {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(b, "- %s\n", task.Title)
			}
		}
		b.WriteString("\n")
	}

	if len(s.Blockers) > 0 {
		b.WriteString("### 🚫 Blockers\n")
		for _, blocker := range s.Blockers {
			fmt.Fprintf(b, "- %s\n", blocker)
		}
		b.WriteString("\n")
	}

	if s.Notes != "" {
		b.WriteString("### 📌 Notes\n")
		b.WriteString(s.Notes + "\n\n")
	}
}
