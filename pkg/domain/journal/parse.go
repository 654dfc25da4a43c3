package journal

import (
	"regexp"
	"strings"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

var (
	dayHeaderRe = regexp.MustCompile(`^## (\w+), `)
	taskRefRe   = regexp.MustCompile(`(` + domain.IDToken + `):`)
	checkboxRe  = regexp.MustCompile(`- \[([ x])\] (` + domain.IDToken + `):`)
)

// ParseCheckboxes extracts the checkbox-state map from journal text in
// a single flat pass, independent of day/section structure. For ids
// appearing on multiple checkbox lines the last occurrence wins.
func ParseCheckboxes(content string) map[string]bool {
	checkboxes := make(map[string]bool)
	for _, m := range checkboxRe.FindAllStringSubmatch(content, -1) {
		checkboxes[m[2]] = m[1] == "x"
	}
	return checkboxes
}

// Parse rebuilds the day sections from journal markdown. The walk is
// tolerant: day headers are recognized by weekday name, sections by
// their fixed marker prefixes, and anything else is ignored. Completed
// membership is decided by the flat checkbox scan, not by section
// structure, so malformed structure never breaks checkbox extraction.
func (j *WeeklyJournal) Parse(content string, tasksByID map[string]*domain.Task) {
	checkboxes := ParseCheckboxes(content)

	var currentDay *DaySection
	currentSection := ""

	for _, line := range strings.Split(content, "\n") {
		if m := dayHeaderRe.FindStringSubmatch(line); m != nil {
			currentDay = nil
			for i := 0; i < 7; i++ {
				date := j.dayDate(i)
				if DayName(date) == m[1] {
					currentDay = j.AddDaySection(date)
					break
				}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, markerPlanned):
			currentSection = "planned"
		case strings.HasPrefix(line, markerBlocked):
			currentSection = "blocked"
		case strings.HasPrefix(line, markerCompleted):
			currentSection = "completed"
		case strings.HasPrefix(line, markerNotes):
			currentSection = "notes"
		case strings.HasPrefix(line, "###"), strings.HasPrefix(line, "##"):
			currentSection = ""
		}

		if currentDay == nil || currentSection == "" || currentSection == "notes" {
			continue
		}

		m := taskRefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id := m[1]

		switch currentSection {
		case "planned":
			if !contains(currentDay.Planned, id) {
				currentDay.Planned = append(currentDay.Planned, id)
				if checkboxes[id] && !contains(currentDay.Completed, id) {
					currentDay.Completed = append(currentDay.Completed, id)
				}
			}
		case "blocked":
			if !contains(currentDay.Blocked, id) {
				currentDay.Blocked = append(currentDay.Blocked, id)
			}
		}
	}
}
