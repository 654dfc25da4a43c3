package domain

import (
	"fmt"
	"strings"
)

// TaskType categorizes the kind of work a task represents.
type TaskType string

const (
	TypeTicket      TaskType = "ticket"
	TypeCrossTeam   TaskType = "cross_team"
	TypeProject     TaskType = "project"
	TypeTrainingRun TaskType = "training_run"
	TypeGeneral     TaskType = "general"
)

// AllTaskTypes returns all valid task types.
func AllTaskTypes() []TaskType {
	return []TaskType{
		TypeTicket,
		TypeCrossTeam,
		TypeProject,
		TypeTrainingRun,
		TypeGeneral,
	}
}

// IsValid returns true if the type is a valid task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TypeTicket, TypeCrossTeam, TypeProject, TypeTrainingRun, TypeGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t TaskType) String() string {
	return string(t)
}

// ParseTaskType validates a raw type value. The error names the
// offending value and the accepted set.
func ParseTaskType(value string) (TaskType, error) {
	t := TaskType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid task type %q. Valid types: %s", value, joinValues(AllTaskTypes()))
	}
	return t, nil
}

// joinValues renders an enum slice as a comma-separated list for error
// messages.
func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
