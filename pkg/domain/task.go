package domain

import "time"

// Task is a unit of work persisted as one markdown file with YAML
// frontmatter. The id is assigned at creation and immutable afterwards.
type Task struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Type        TaskType     `yaml:"type"`
	Status      TaskStatus   `yaml:"status"`
	Priority    TaskPriority `yaml:"priority"`

	CheckFrequency CheckFrequency `yaml:"check_frequency"`

	CreatedAt   time.Time  `yaml:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at"`
	ETA         *time.Time `yaml:"eta,omitempty"`
	LastChecked *time.Time `yaml:"last_checked,omitempty"`
	NotifyAt    *time.Time `yaml:"notify_at,omitempty"`

	// Dependencies is an ordered list of task ids. Neither uniqueness
	// nor acyclicity is enforced.
	Dependencies []string `yaml:"dependencies,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
	Notes        []Note   `yaml:"notes,omitempty"`
}

// NewTask creates a task with a fresh id and the standard defaults.
func NewTask(title string) *Task {
	now := time.Now()
	return &Task{
		ID:             NewTaskID(),
		Title:          title,
		Type:           TypeGeneral,
		Status:         StatusTodo,
		Priority:       PriorityMedium,
		CheckFrequency: CheckWeekly,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddNote appends a timestamped note and bumps the update time.
func (t *Task) AddNote(content string) {
	now := time.Now()
	t.Notes = append(t.Notes, Note{Timestamp: now, Content: content})
	t.UpdatedAt = now
}

// IsOverdue reports whether the task is past its ETA. Done tasks and
// tasks without an ETA are never overdue.
func (t *Task) IsOverdue() bool {
	if t.ETA == nil || t.Status == StatusDone {
		return false
	}
	return time.Now().After(*t.ETA)
}

// NeedsCheck reports whether the task is due for a status check under
// its check frequency. Tasks never checked before are always due.
// Custom-frequency tasks carry no interval and never auto-flag.
func (t *Task) NeedsCheck() bool {
	if t.Status == StatusDone {
		return false
	}
	if t.LastChecked == nil {
		return true
	}

	days, ok := t.CheckFrequency.IntervalDays()
	if !ok {
		return false
	}
	elapsed := time.Since(*t.LastChecked)
	return int(elapsed.Hours()/24) >= days
}

// NeedsNotification reports whether the notify-at time has passed for a
// task that is still open.
func (t *Task) NeedsNotification() bool {
	if t.NotifyAt == nil || t.Status == StatusDone {
		return false
	}
	return !time.Now().Before(*t.NotifyAt)
}

// MarkChecked records a status check now.
func (t *Task) MarkChecked() {
	now := time.Now()
	t.LastChecked = &now
	t.UpdatedAt = now
}
