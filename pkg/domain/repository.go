package domain

import "errors"

// ErrTaskNotFound is returned when a task id does not resolve to a
// stored task. Callers treat this as a normal negative result.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository is the persistence port for task records. The core
// treats it as a reliable, immediately consistent key-value store and
// does not prescribe its on-disk format.
type TaskRepository interface {
	// GetTask returns the stored task or ErrTaskNotFound.
	GetTask(id string) (*Task, error)
	// SaveTask persists the task, overwriting any previous version.
	SaveTask(task *Task) error
	// DeleteTask removes the task. It returns false when no task with
	// that id existed.
	DeleteTask(id string) (bool, error)
	// LoadAllTasks returns every stored task keyed by id.
	LoadAllTasks() (map[string]*Task, error)
	// TaskExists reports whether a task with the id is stored.
	TaskExists(id string) bool
}

// AuditLogger records an auditable action. Implementations must never
// block domain operations on logging failures beyond returning the
// error.
type AuditLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) error
}
