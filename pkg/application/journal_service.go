package application

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

// JournalService owns the day and week level journal workflows built
// on top of single reconciliation passes.
type JournalService struct {
	store *storage.FilesystemStore
	tasks *TaskService
	sync  *SyncService
}

// NewJournalService creates the journal workflow service.
func NewJournalService(store *storage.FilesystemStore, tasks *TaskService, sync *SyncService) *JournalService {
	return &JournalService{store: store, tasks: tasks, sync: sync}
}

// LoadWeek returns the parsed journal for an ISO week, or an empty
// document when no file is stored yet.
func (s *JournalService) LoadWeek(year, week int) (*journal.WeeklyJournal, error) {
	doc := journal.New(year, week)

	content, err := s.store.ReadJournal(year, week)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	tasksByID, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	doc.Parse(content, tasksByID)
	return doc, nil
}

// StartDay ensures the journal for date's week exists, seeds the day
// section with tasks needing attention, persists, and returns the
// section. A brand-new journal is populated for the whole week:
// Monday additionally collects in-progress and overdue tasks, and every
// day collects tasks due for a check plus anything blocked.
func (s *JournalService) StartDay(date time.Time) (*journal.DaySection, error) {
	year, week := journal.WeekForDate(date)

	tasksByID, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	doc := journal.New(year, week)
	if s.store.JournalExists(year, week) {
		content, err := s.store.ReadJournal(year, week)
		if err != nil {
			return nil, fmt.Errorf("failed to read journal: %w", err)
		}
		doc.Parse(content, tasksByID)
	} else {
		if err := s.populateNewJournal(doc); err != nil {
			return nil, err
		}
	}

	day := doc.DaySectionFor(date)
	if day == nil {
		day = doc.AddDaySection(date)
		if err := s.seedDay(day); err != nil {
			return nil, err
		}
	}

	if err := s.store.WriteJournal(year, week, doc.Render(tasksByID)); err != nil {
		return nil, fmt.Errorf("failed to write journal: %w", err)
	}
	return day, nil
}

// EndDay commits the day's checkbox edits by running a reconciliation
// pass, then returns the day's section as it stands afterwards.
func (s *JournalService) EndDay(date time.Time) (*journal.DaySection, *SyncResult, error) {
	year, week := journal.WeekForDate(date)

	result, err := s.sync.SyncWeek(year, week)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.LoadWeek(year, week)
	if err != nil {
		return nil, nil, err
	}
	return doc.DaySectionFor(date), result, nil
}

// OpenJournal makes sure the week's journal exists and launches the
// editor on it, blocking until the editor exits.
func (s *JournalService) OpenJournal(date time.Time, editor string) (string, error) {
	if _, err := s.StartDay(date); err != nil {
		return "", err
	}

	year, week := journal.WeekForDate(date)
	path := s.store.JournalPath(year, week)

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return path, nil
}

// GenerateWeekSummary aggregates the week's day sections into a
// summary, embeds it in the journal, and writes the standalone summary
// file alongside.
func (s *JournalService) GenerateWeekSummary(year, week int) (*journal.WeeklySummary, error) {
	doc, err := s.LoadWeek(year, week)
	if err != nil {
		return nil, err
	}
	tasksByID, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	summary := summarizeWeek(doc, tasksByID)
	doc.Summary = summary

	if err := s.store.WriteJournal(year, week, doc.Render(tasksByID)); err != nil {
		return nil, fmt.Errorf("failed to write journal: %w", err)
	}
	if err := s.store.WriteSummary(year, week, renderSummaryFile(doc, summary, tasksByID)); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	return summary, nil
}

// QuarterlySummary aggregates the weekly summaries of every ISO week
// starting within the calendar quarter.
type QuarterlySummary struct {
	Year            int
	Quarter         int
	WeeksTracked    int
	CompletedTasks  []string
	InProgressTasks []string
	Blockers        []string
}

// QuarterSummary walks the quarter's weeks and unions their summaries.
// Weeks without a stored journal are skipped; the summary of each found
// week is recomputed from its day sections.
func (s *JournalService) QuarterSummary(year, quarter int) (*QuarterlySummary, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("quarter must be 1-4, got %d", quarter)
	}

	tasksByID, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	quarterStart := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.Local)
	quarterEnd := quarterStart.AddDate(0, 3, 0)

	completed := make(map[string]struct{})
	inProgress := make(map[string]struct{})
	var blockers []string
	weeksTracked := 0

	// A week belongs to the quarter containing its Monday, so anchor the
	// walk on the first Monday at or after the quarter start.
	monday := journal.WeekStart(journal.WeekForDate(quarterStart))
	if monday.Before(quarterStart) {
		monday = monday.AddDate(0, 0, 7)
	}
	for ; monday.Before(quarterEnd); monday = monday.AddDate(0, 0, 7) {
		wYear, wWeek := journal.WeekForDate(monday)
		if !s.store.JournalExists(wYear, wWeek) {
			continue
		}

		doc, err := s.LoadWeek(wYear, wWeek)
		if err != nil {
			return nil, err
		}
		summary := summarizeWeek(doc, tasksByID)
		weeksTracked++

		for _, id := range summary.TasksCompleted {
			completed[id] = struct{}{}
		}
		for _, id := range summary.TasksInProgress {
			inProgress[id] = struct{}{}
		}
		blockers = append(blockers, summary.Blockers...)
	}

	return &QuarterlySummary{
		Year:            year,
		Quarter:         quarter,
		WeeksTracked:    weeksTracked,
		CompletedTasks:  sortedSet(completed),
		InProgressTasks: sortedSet(inProgress),
		Blockers:        blockers,
	}, nil
}

// summarizeWeek derives a WeeklySummary from the document's day
// sections and current task statuses. Blockers carry task titles, not
// ids, because they read as prose in the summary.
func summarizeWeek(doc *journal.WeeklyJournal, tasksByID map[string]*domain.Task) *journal.WeeklySummary {
	planned := make(map[string]struct{})
	completed := make(map[string]struct{})
	blocked := make(map[string]struct{})

	for _, day := range doc.Days {
		for _, id := range day.Planned {
			planned[id] = struct{}{}
		}
		for _, id := range day.Completed {
			completed[id] = struct{}{}
		}
		for _, id := range day.Blocked {
			blocked[id] = struct{}{}
		}
	}

	var inProgress []string
	for _, id := range sortedSet(planned) {
		if _, done := completed[id]; done {
			continue
		}
		if task, ok := tasksByID[id]; ok && task.Status == domain.StatusInProgress {
			inProgress = append(inProgress, id)
		}
	}

	var blockers []string
	for _, id := range sortedSet(blocked) {
		if task, ok := tasksByID[id]; ok {
			blockers = append(blockers, task.Title)
		}
	}

	return &journal.WeeklySummary{
		WeekStart:       doc.WeekStart,
		WeekEnd:         doc.WeekEnd,
		TasksCompleted:  sortedSet(completed),
		TasksInProgress: inProgress,
		Blockers:        blockers,
	}
}

// renderSummaryFile produces the standalone human-readable summary
// document.
func renderSummaryFile(doc *journal.WeeklyJournal, summary *journal.WeeklySummary, tasksByID map[string]*domain.Task) string {
	var b strings.Builder

	weekRange := fmt.Sprintf("%s - %s", summary.WeekStart.Format("Jan 02"), summary.WeekEnd.Format("Jan 02, 2006"))
	fmt.Fprintf(&b, "# Week %d Summary - %d\n\n", doc.Week, doc.Year)
	fmt.Fprintf(&b, "**Period:** %s\n", weekRange)
	fmt.Fprintf(&b, "**Completed Tasks:** %d\n", summary.CompletedCount())
	fmt.Fprintf(&b, "**In Progress:** %d\n\n", len(summary.TasksInProgress))

	b.WriteString("## ✅ Accomplished This Week\n\n")
	if len(summary.TasksCompleted) > 0 {
		for _, id := range summary.TasksCompleted {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(&b, "- **%s** (%s)\n", task.Title, task.Type)
			}
		}
	} else {
		b.WriteString("No tasks completed this week.\n")
	}
	b.WriteString("\n")

	b.WriteString("## 🔄 Still In Progress\n\n")
	if len(summary.TasksInProgress) > 0 {
		for _, id := range summary.TasksInProgress {
			if task, ok := tasksByID[id]; ok {
				fmt.Fprintf(&b, "- **%s** (%s)\n", task.Title, task.Type)
				if task.ETA != nil {
					fmt.Fprintf(&b, "  - ETA: %s\n", task.ETA.Format("Jan 02, 2006"))
				}
			}
		}
	} else {
		b.WriteString("No tasks in progress.\n")
	}
	b.WriteString("\n")

	if len(summary.Blockers) > 0 {
		b.WriteString("## 🚫 Blockers\n\n")
		for _, blocker := range summary.Blockers {
			fmt.Fprintf(&b, "- %s\n", blocker)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	return b.String()
}

// populateNewJournal seeds a fresh weekly journal: Monday carries
// whatever is already in flight or overdue, every day carries tasks
// due for their periodic check and anything blocked.
func (s *JournalService) populateNewJournal(doc *journal.WeeklyJournal) error {
	all, err := s.tasks.ListTasks()
	if err != nil {
		return err
	}

	var inProgress, needsCheck, overdue, blocked []*domain.Task
	for _, t := range all {
		if t.Status == domain.StatusInProgress {
			inProgress = append(inProgress, t)
		}
		if t.NeedsCheck() {
			needsCheck = append(needsCheck, t)
		}
		if t.IsOverdue() {
			overdue = append(overdue, t)
		}
		if t.Status == domain.StatusBlocked {
			blocked = append(blocked, t)
		}
	}

	for i := 0; i < 7; i++ {
		day := doc.AddDaySection(doc.WeekStart.AddDate(0, 0, i))

		if i == 0 {
			for _, t := range inProgress {
				appendUnique(&day.Planned, t.ID)
			}
			for _, t := range overdue {
				appendUnique(&day.Planned, t.ID)
			}
		}
		for _, t := range needsCheck {
			appendUnique(&day.Planned, t.ID)
		}
		for _, t := range blocked {
			appendUnique(&day.Blocked, t.ID)
		}
	}
	return nil
}

// seedDay fills a newly started day with in-progress, check-due and
// overdue tasks.
func (s *JournalService) seedDay(day *journal.DaySection) error {
	all, err := s.tasks.ListTasks()
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.Status == domain.StatusInProgress || t.NeedsCheck() || t.IsOverdue() {
			appendUnique(&day.Planned, t.ID)
		}
	}
	return nil
}

func appendUnique(ids *[]string, id string) {
	for _, v := range *ids {
		if v == id {
			return
		}
	}
	*ids = append(*ids, id)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
