package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

func testTask(id, title string, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:             id,
		Title:          title,
		Type:           domain.TypeGeneral,
		Status:         status,
		Priority:       domain.PriorityMedium,
		CheckFrequency: domain.CheckWeekly,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestRender_AllSevenDays(t *testing.T) {
	j := New(2026, 2)
	content := j.Render(nil)

	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		if !strings.Contains(content, "## "+day+", ") {
			t.Errorf("rendered journal missing day header for %s", day)
		}
	}
	if !strings.Contains(content, "# Week 2 - 2026") {
		t.Error("rendered journal missing week header")
	}
	if got := strings.Count(content, markerPlanned); got != 7 {
		t.Errorf("Planned sections = %d, want 7", got)
	}
	if got := strings.Count(content, markerNotes); got != 7 {
		t.Errorf("Notes sections = %d, want 7", got)
	}
}

func TestRender_CheckboxReflectsCompletion(t *testing.T) {
	j := New(2026, 2)
	tasks := map[string]*domain.Task{
		"task-aaaa1111": testTask("task-aaaa1111", "Open task", domain.StatusTodo),
		"task-bbbb2222": testTask("task-bbbb2222", "Done task", domain.StatusDone),
	}

	day := j.AddDaySection(j.WeekStart)
	day.Planned = []string{"task-aaaa1111", "task-bbbb2222"}
	day.Completed = []string{"task-bbbb2222"}

	content := j.Render(tasks)

	if !strings.Contains(content, "- [ ] task-aaaa1111: Open task (general, medium)") {
		t.Error("open task should render unchecked with type and priority")
	}
	if !strings.Contains(content, "- [x] task-bbbb2222: Done task (general, medium)") {
		t.Error("completed task should render checked")
	}
}

func TestRender_InProgressWithETA(t *testing.T) {
	j := New(2026, 2)
	notify := time.Date(2026, 1, 7, 14, 0, 0, 0, time.Local)

	task := testTask("task-cccc3333", "Long training run", domain.StatusInProgress)
	task.NotifyAt = &notify
	tasks := map[string]*domain.Task{task.ID: task}

	day := j.AddDaySection(j.WeekStart)
	day.Planned = []string{task.ID}

	content := j.Render(tasks)
	if !strings.Contains(content, markerInProgress) {
		t.Fatal("missing In Progress section")
	}
	if !strings.Contains(content, "  - ETA: Jan 07, 14:00") {
		t.Error("missing notify ETA annotation")
	}
}

func TestRender_SummarySection(t *testing.T) {
	j := New(2026, 2)
	tasks := map[string]*domain.Task{
		"task-dddd4444": testTask("task-dddd4444", "Shipped thing", domain.StatusDone),
	}
	j.Summary = &WeeklySummary{
		WeekStart:      j.WeekStart,
		WeekEnd:        j.WeekEnd,
		TasksCompleted: []string{"task-dddd4444"},
		Blockers:       []string{"waiting on security review"},
	}

	content := j.Render(tasks)
	if !strings.Contains(content, markerSummary) {
		t.Fatal("missing week summary section")
	}
	if !strings.Contains(content, "**Completed:** 1 tasks") {
		t.Error("missing completed count")
	}
	if !strings.Contains(content, "- Shipped thing") {
		t.Error("missing accomplished task title")
	}
	if !strings.Contains(content, "- waiting on security review") {
		t.Error("missing blocker description")
	}
}

func TestRenderParse_RoundTrip(t *testing.T) {
	j := New(2026, 2)
	tasks := map[string]*domain.Task{
		"task-aaaa1111": testTask("task-aaaa1111", "First", domain.StatusTodo),
		"task-bbbb2222": testTask("task-bbbb2222", "Second", domain.StatusDone),
		"task-cccc3333": testTask("task-cccc3333", "Blocked one", domain.StatusBlocked),
	}

	monday := j.AddDaySection(j.WeekStart)
	monday.Planned = []string{"task-aaaa1111", "task-bbbb2222"}
	monday.Completed = []string{"task-bbbb2222"}
	monday.Blocked = []string{"task-cccc3333"}

	wednesday := j.AddDaySection(j.WeekStart.AddDate(0, 0, 2))
	wednesday.Planned = []string{"task-aaaa1111"}

	content := j.Render(tasks)

	reparsed := New(2026, 2)
	reparsed.Parse(content, tasks)

	gotMonday := reparsed.DaySectionFor(j.WeekStart)
	if gotMonday == nil {
		t.Fatal("Monday section lost in round trip")
	}
	if len(gotMonday.Planned) != 2 || gotMonday.Planned[0] != "task-aaaa1111" || gotMonday.Planned[1] != "task-bbbb2222" {
		t.Errorf("Monday planned = %v", gotMonday.Planned)
	}
	if len(gotMonday.Completed) != 1 || gotMonday.Completed[0] != "task-bbbb2222" {
		t.Errorf("Monday completed = %v", gotMonday.Completed)
	}
	if len(gotMonday.Blocked) != 1 || gotMonday.Blocked[0] != "task-cccc3333" {
		t.Errorf("Monday blocked = %v", gotMonday.Blocked)
	}

	gotWednesday := reparsed.DaySectionFor(j.WeekStart.AddDate(0, 0, 2))
	if gotWednesday == nil || len(gotWednesday.Planned) != 1 {
		t.Fatalf("Wednesday planned lost in round trip: %+v", gotWednesday)
	}
}

func TestParse_IgnoresForeignLines(t *testing.T) {
	j := New(2026, 2)
	content := strings.Join([]string{
		"random prose at the top",
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] task-aaaa1111: Alpha (general, high)",
		"not a task line at all",
		"- [?] broken checkbox glyph task-ffff9999",
		"### some other heading",
		"- [ ] task-bbbb2222: should not be collected, section reset",
		"",
	}, "\n")

	j.Parse(content, nil)

	monday := j.DaySectionFor(j.WeekStart)
	if monday == nil {
		t.Fatal("Monday not detected")
	}
	if len(monday.Planned) != 1 || monday.Planned[0] != "task-aaaa1111" {
		t.Errorf("planned = %v, want only task-aaaa1111", monday.Planned)
	}
}

func TestParseCheckboxes_LastWins(t *testing.T) {
	content := strings.Join([]string{
		"- [ ] task-aaaa1111: First mention (general, high)",
		"- [x] task-bbbb2222: Checked (project, medium)",
		"- [x] task-aaaa1111: Second mention wins (general, high)",
	}, "\n")

	boxes := ParseCheckboxes(content)
	if len(boxes) != 2 {
		t.Fatalf("len = %d, want 2", len(boxes))
	}
	if !boxes["task-aaaa1111"] {
		t.Error("last occurrence of task-aaaa1111 should win (checked)")
	}
	if !boxes["task-bbbb2222"] {
		t.Error("task-bbbb2222 should be checked")
	}
}
