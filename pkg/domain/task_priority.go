package domain

import "fmt"

// TaskPriority ranks how urgent a task is.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// priorityOrder defines the ordering of priorities (higher order = higher priority)
var priorityOrder = map[TaskPriority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// AllTaskPriorities returns all valid task priorities.
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
	}
}

// IsValid returns true if the priority is a valid task priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p TaskPriority) String() string {
	return string(p)
}

// Order returns the numeric order of the priority (higher = more important).
func (p TaskPriority) Order() int {
	if order, ok := priorityOrder[p]; ok {
		return order
	}
	return 0
}

// IsHigherThan returns true if this priority outranks the other.
func (p TaskPriority) IsHigherThan(other TaskPriority) bool {
	return p.Order() > other.Order()
}

// ParseTaskPriority validates a raw priority value. The error names the
// offending value and the accepted set.
func ParseTaskPriority(value string) (TaskPriority, error) {
	p := TaskPriority(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q. Valid priorities: %s", value, joinValues(AllTaskPriorities()))
	}
	return p, nil
}
