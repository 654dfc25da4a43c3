package domain

import "fmt"

// TaskStatus tracks where a task sits in its lifecycle.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusWaiting    TaskStatus = "waiting"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
)

// AllTaskStatuses returns all valid task statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		StatusTodo,
		StatusInProgress,
		StatusWaiting,
		StatusDone,
		StatusBlocked,
	}
}

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusWaiting, StatusDone, StatusBlocked:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus validates a raw status value. The error names the
// offending value and the accepted set.
func ParseTaskStatus(value string) (TaskStatus, error) {
	s := TaskStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status %q. Valid statuses: %s", value, joinValues(AllTaskStatuses()))
	}
	return s, nil
}
