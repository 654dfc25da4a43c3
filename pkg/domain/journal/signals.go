package journal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

// The reconciliation parser extracts three independent signals from raw
// journal text: checkbox states (ParseCheckboxes), new-task
// declarations, and the set of referenced task ids. The signals are
// deliberately decoupled so one malformed line never blocks the others;
// the text is hand-edited in a general-purpose editor.

var (
	// newEntryTolerantRe identifies any line intended as a new-task
	// declaration, whether or not it is well formed.
	newEntryTolerantRe = regexp.MustCompile(`- \[ \] NEW:[^\n]*`)
	// newEntryStrictRe is the grammar a declaration must satisfy:
	// - [ ] NEW: <title> (<type>, <priority>)
	newEntryStrictRe = regexp.MustCompile(`^- \[ \] NEW:\s*(.+?)\s*\((\w+),\s*(\w+)\)\s*$`)
)

// newEntryFormat is quoted in malformed-entry diagnostics.
const newEntryFormat = "- [ ] NEW: Task title (type, priority)"

// NewTaskEntry is one valid new-task declaration found in journal text.
// Start and End delimit the matched line span within the original text
// so the orchestrator can splice in the canonical reference line.
type NewTaskEntry struct {
	Title    string
	Type     domain.TaskType
	Priority domain.TaskPriority
	Line     int
	Start    int
	End      int
}

// ParseError is a non-fatal reconciliation diagnostic. It preserves the
// literal offending text and its 1-based line number so the editing
// human can locate the mistake.
type ParseError struct {
	Line    int
	Text    string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

// DetectNewTasks scans journal text for new-task declarations. Valid
// declarations are returned in document order; malformed or
// invalid-enum declarations are reported as accumulated errors, never
// aborting the scan.
func DetectNewTasks(content string) ([]NewTaskEntry, []ParseError) {
	var entries []NewTaskEntry
	var errs []ParseError

	for _, span := range newEntryTolerantRe.FindAllStringIndex(content, -1) {
		start, end := span[0], span[1]
		text := content[start:end]
		line := 1 + strings.Count(content[:start], "\n")

		m := newEntryStrictRe.FindStringSubmatch(text)
		if m == nil {
			errs = append(errs, ParseError{
				Line: line,
				Text: text,
				Message: fmt.Sprintf("Malformed NEW entry: '%s'. Expected format: '%s'",
					text, newEntryFormat),
			})
			continue
		}

		title := strings.TrimSpace(m[1])
		taskType := domain.TaskType(m[2])
		priority := domain.TaskPriority(m[3])

		if !taskType.IsValid() {
			errs = append(errs, ParseError{
				Line: line,
				Text: text,
				Message: fmt.Sprintf("Invalid task type '%s'. Valid types: %s",
					m[2], joinTypes()),
			})
			continue
		}
		if !priority.IsValid() {
			errs = append(errs, ParseError{
				Line: line,
				Text: text,
				Message: fmt.Sprintf("Invalid priority '%s'. Valid priorities: %s",
					m[3], joinPriorities()),
			})
			continue
		}

		entries = append(entries, NewTaskEntry{
			Title:    title,
			Type:     taskType,
			Priority: priority,
			Line:     line,
			Start:    start,
			End:      end,
		})
	}

	return entries, errs
}

// ReferencedTaskIDs returns the set of task ids appearing on any
// checkbox line. The orchestrator diffs this against the store's known
// ids to detect deletions.
func ReferencedTaskIDs(content string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, m := range checkboxRe.FindAllStringSubmatch(content, -1) {
		ids[m[2]] = struct{}{}
	}
	return ids
}

// ReferenceLine renders the canonical checkbox line that replaces a
// processed NEW declaration.
func ReferenceLine(task *domain.Task) string {
	return fmt.Sprintf("- [ ] %s: %s (%s, %s)", task.ID, task.Title, task.Type, task.Priority)
}

func joinTypes() string {
	parts := make([]string, 0, len(domain.AllTaskTypes()))
	for _, t := range domain.AllTaskTypes() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

func joinPriorities() string {
	parts := make([]string, 0, len(domain.AllTaskPriorities()))
	for _, p := range domain.AllTaskPriorities() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}
