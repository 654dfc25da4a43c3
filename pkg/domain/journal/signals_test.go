package journal

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

func TestDetectNewTasks_Valid(t *testing.T) {
	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] NEW: Review quarterly roadmap (project, high)",
		"- [ ] NEW: Triage oncall queue (ticket, medium)",
		"- [ ] NEW: Kick off eval sweep (training_run, low)",
	}, "\n")

	entries, errs := DetectNewTasks(content)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	want := []struct {
		title    string
		taskType domain.TaskType
		priority domain.TaskPriority
		line     int
	}{
		{"Review quarterly roadmap", domain.TypeProject, domain.PriorityHigh, 4},
		{"Triage oncall queue", domain.TypeTicket, domain.PriorityMedium, 5},
		{"Kick off eval sweep", domain.TypeTrainingRun, domain.PriorityLow, 6},
	}
	for i, w := range want {
		e := entries[i]
		if e.Title != w.title || e.Type != w.taskType || e.Priority != w.priority {
			t.Errorf("entry %d = %q (%s, %s), want %q (%s, %s)",
				i, e.Title, e.Type, e.Priority, w.title, w.taskType, w.priority)
		}
		if e.Line != w.line {
			t.Errorf("entry %d line = %d, want %d", i, e.Line, w.line)
		}
		if content[e.Start:e.End] != strings.Split(content, "\n")[w.line-1] {
			t.Errorf("entry %d span does not cover its source line", i)
		}
	}
}

func TestDetectNewTasks_TrimsTitleWhitespace(t *testing.T) {
	entries, errs := DetectNewTasks("- [ ] NEW:    Padded title   (general, medium)")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 1 || entries[0].Title != "Padded title" {
		t.Fatalf("entries = %+v, want single entry with trimmed title", entries)
	}
}

func TestDetectNewTasks_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing parens", "- [ ] NEW: Task without metadata"},
		{"missing priority", "- [ ] NEW: Task title (ticket)"},
		{"empty declaration", "- [ ] NEW:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, errs := DetectNewTasks(tt.line)
			if len(entries) != 0 {
				t.Fatalf("entries = %+v, want none", entries)
			}
			if len(errs) != 1 {
				t.Fatalf("errs = %v, want exactly one", errs)
			}
			msg := errs[0].Error()
			if !strings.HasPrefix(msg, "Line 1: Malformed NEW entry: '"+tt.line+"'") {
				t.Errorf("message = %q, want malformed diagnostic quoting the line", msg)
			}
			if !strings.Contains(msg, "Expected format: '- [ ] NEW: Task title (type, priority)'") {
				t.Errorf("message = %q, missing expected-format hint", msg)
			}
		})
	}
}

func TestDetectNewTasks_InvalidType(t *testing.T) {
	entries, errs := DetectNewTasks("- [ ] NEW: Some task (chore, high)")
	if len(entries) != 0 {
		t.Fatalf("entries = %+v, want none", entries)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
	msg := errs[0].Message
	if !strings.Contains(msg, "Invalid task type 'chore'") {
		t.Errorf("message = %q, want invalid-type diagnostic", msg)
	}
	for _, valid := range domain.AllTaskTypes() {
		if !strings.Contains(msg, string(valid)) {
			t.Errorf("message = %q, missing valid type %s", msg, valid)
		}
	}
}

func TestDetectNewTasks_InvalidPriority(t *testing.T) {
	entries, errs := DetectNewTasks("- [ ] NEW: Some task (ticket, urgent)")
	if len(entries) != 0 {
		t.Fatalf("entries = %+v, want none", entries)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
	msg := errs[0].Message
	if !strings.Contains(msg, "Invalid priority 'urgent'") {
		t.Errorf("message = %q, want invalid-priority diagnostic", msg)
	}
	if !strings.Contains(msg, "high, medium, low") {
		t.Errorf("message = %q, missing valid priorities", msg)
	}
}

func TestDetectNewTasks_MixedValidAndInvalid(t *testing.T) {
	content := strings.Join([]string{
		"- [ ] NEW: Good one (ticket, high)",
		"- [ ] NEW: Broken, no metadata",
		"- [ ] NEW: Bad type (sprint, low)",
		"- [ ] NEW: Another good one (general, low)",
		"- [ ] NEW: Bad priority (project, someday)",
	}, "\n")

	entries, errs := DetectNewTasks(content)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2: %+v", len(entries), entries)
	}
	if len(errs) != 3 {
		t.Fatalf("errs = %d, want 3: %v", len(errs), errs)
	}
	if entries[0].Title != "Good one" || entries[1].Title != "Another good one" {
		t.Errorf("valid entries out of document order: %+v", entries)
	}
	if errs[0].Line != 2 || errs[1].Line != 3 || errs[2].Line != 5 {
		t.Errorf("error lines = %d, %d, %d, want 2, 3, 5",
			errs[0].Line, errs[1].Line, errs[2].Line)
	}
}

func TestDetectNewTasks_IgnoresRegularLines(t *testing.T) {
	content := strings.Join([]string{
		"- [ ] task-aaaa1111: Existing task (general, medium)",
		"- [x] task-bbbb2222: Done task (ticket, high)",
		"Some prose mentioning NEW: things in passing",
		"<!-- Add tasks for today -->",
	}, "\n")

	entries, errs := DetectNewTasks(content)
	if len(entries) != 0 || len(errs) != 0 {
		t.Fatalf("entries = %v, errs = %v, want none", entries, errs)
	}
}

func TestReferencedTaskIDs(t *testing.T) {
	content := strings.Join([]string{
		"- [ ] task-aaaa1111: Alpha (general, medium)",
		"- [x] task-bbbb2222: Beta (ticket, high)",
		"- task-cccc3333: no checkbox so not a reference",
		"- [ ] NEW: Not yet a task (general, low)",
		"- [ ] task-aaaa1111: Alpha again (general, medium)",
	}, "\n")

	ids := ReferencedTaskIDs(content)
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 entries", ids)
	}
	for _, want := range []string{"task-aaaa1111", "task-bbbb2222"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("missing %s", want)
		}
	}
}

func TestReferenceLine(t *testing.T) {
	task := testTask("task-dddd4444", "Write onboarding doc", domain.StatusTodo)
	task.Type = domain.TypeCrossTeam
	task.Priority = domain.PriorityHigh

	got := ReferenceLine(task)
	want := "- [ ] task-dddd4444: Write onboarding doc (cross_team, high)"
	if got != want {
		t.Errorf("ReferenceLine = %q, want %q", got, want)
	}
}

func TestParseError_Error(t *testing.T) {
	err := ParseError{Line: 12, Text: "bad", Message: "Malformed NEW entry"}
	if got := err.Error(); got != "Line 12: Malformed NEW entry" {
		t.Errorf("Error() = %q", got)
	}
}
