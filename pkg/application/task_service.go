// Package application wires the domain model to storage and exposes
// the use-case surface shared by the CLI and the agent tool server.
package application

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

// Defaults are the configured fallback values applied when a create
// request leaves them unset.
type Defaults struct {
	Priority       domain.TaskPriority
	CheckFrequency domain.CheckFrequency
}

// TaskService owns the task record lifecycle.
type TaskService struct {
	repo     domain.TaskRepository
	audit    domain.AuditLogger
	actor    string
	defaults Defaults
}

// NewTaskService creates a task service. audit may be nil; actor names
// who drives this service instance in audit records ("human" for the
// CLI, "agent" for the tool server).
func NewTaskService(repo domain.TaskRepository, audit domain.AuditLogger, actor string, defaults Defaults) *TaskService {
	if defaults.Priority == "" {
		defaults.Priority = domain.PriorityMedium
	}
	if defaults.CheckFrequency == "" {
		defaults.CheckFrequency = domain.CheckWeekly
	}
	return &TaskService{repo: repo, audit: audit, actor: actor, defaults: defaults}
}

// CreateTaskParams carries optional attributes for a new task. Zero
// values fall back to the configured defaults.
type CreateTaskParams struct {
	Title          string
	Description    string
	Type           domain.TaskType
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	CheckFrequency domain.CheckFrequency
	ETA            *time.Time
	NotifyAt       *time.Time
	Tags           []string
	Dependencies   []string
}

// CreateTask creates and persists a new task.
func (s *TaskService) CreateTask(params CreateTaskParams) (*domain.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}

	task := domain.NewTask(strings.TrimSpace(params.Title))
	task.Description = params.Description
	task.Priority = s.defaults.Priority
	task.CheckFrequency = s.defaults.CheckFrequency

	if params.Type != "" {
		task.Type = params.Type
	}
	if params.Status != "" {
		task.Status = params.Status
	}
	if params.Priority != "" {
		task.Priority = params.Priority
	}
	if params.CheckFrequency != "" {
		task.CheckFrequency = params.CheckFrequency
	}
	task.ETA = params.ETA
	task.NotifyAt = params.NotifyAt
	task.Tags = params.Tags
	task.Dependencies = params.Dependencies

	if err := s.repo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logEvent("task.created", map[string]interface{}{"task_id": task.ID, "title": task.Title})
	return task, nil
}

// GetTask loads one task by id.
func (s *TaskService) GetTask(id string) (*domain.Task, error) {
	return s.repo.GetTask(id)
}

// ListTasks returns all tasks ordered by creation time, oldest first.
func (s *TaskService) ListTasks() ([]*domain.Task, error) {
	byID, err := s.repo.LoadAllTasks()
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(byID))
	for _, t := range byID {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// UpdateTaskParams carries partial updates. Nil means "leave as is";
// slices follow the same convention, so clearing tags requires an
// explicit empty slice.
type UpdateTaskParams struct {
	Title          *string
	Description    *string
	Type           *domain.TaskType
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	CheckFrequency *domain.CheckFrequency
	ETA            *time.Time
	NotifyAt       *time.Time
	Tags           []string
	Dependencies   []string
}

// UpdateTask applies the provided fields and persists the task.
func (s *TaskService) UpdateTask(id string, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.repo.GetTask(id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Type != nil {
		task.Type = *params.Type
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.CheckFrequency != nil {
		task.CheckFrequency = *params.CheckFrequency
	}
	if params.ETA != nil {
		task.ETA = params.ETA
	}
	if params.NotifyAt != nil {
		task.NotifyAt = params.NotifyAt
	}
	if params.Tags != nil {
		task.Tags = params.Tags
	}
	if params.Dependencies != nil {
		task.Dependencies = params.Dependencies
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.logEvent("task.updated", map[string]interface{}{"task_id": task.ID})
	return task, nil
}

// DeleteTask removes a task. It returns false when no task with that
// id existed.
func (s *TaskService) DeleteTask(id string) (bool, error) {
	deleted, err := s.repo.DeleteTask(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logEvent("task.deleted", map[string]interface{}{"task_id": id})
	}
	return deleted, nil
}

// AddNote appends a timestamped note to the task.
func (s *TaskService) AddNote(id, content string) (*domain.Task, error) {
	task, err := s.repo.GetTask(id)
	if err != nil {
		return nil, err
	}
	task.AddNote(content)
	if err := s.repo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	s.logEvent("task.note_added", map[string]interface{}{"task_id": id})
	return task, nil
}

// MarkDone sets the task's status to done.
func (s *TaskService) MarkDone(id string) (*domain.Task, error) {
	status := domain.StatusDone
	return s.UpdateTask(id, UpdateTaskParams{Status: &status})
}

// MarkInProgress sets the task's status to in progress.
func (s *TaskService) MarkInProgress(id string) (*domain.Task, error) {
	status := domain.StatusInProgress
	return s.UpdateTask(id, UpdateTaskParams{Status: &status})
}

// MarkChecked records a status check on the task.
func (s *TaskService) MarkChecked(id string) (*domain.Task, error) {
	task, err := s.repo.GetTask(id)
	if err != nil {
		return nil, err
	}
	task.MarkChecked()
	if err := s.repo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

// TaskFilter narrows a task listing. Zero fields match everything.
type TaskFilter struct {
	Status   domain.TaskStatus
	Type     domain.TaskType
	Priority domain.TaskPriority
	Tags     []string
	Search   string
}

// FilterTasks returns tasks matching every set criterion. Tags match
// when any requested tag is present; search matches title or
// description, case-insensitively.
func (s *TaskService) FilterTasks(filter TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return nil, err
	}

	var matched []*domain.Task
	search := strings.ToLower(filter.Search)
	for _, t := range tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if len(filter.Tags) > 0 && !anyTagMatches(t.Tags, filter.Tags) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		matched = append(matched, t)
	}
	return matched, nil
}

// OverdueTasks returns all tasks past their ETA.
func (s *TaskService) OverdueTasks() ([]*domain.Task, error) {
	return s.selectTasks(func(t *domain.Task) bool { return t.IsOverdue() })
}

// TasksNeedingCheck returns tasks due for a periodic status check.
func (s *TaskService) TasksNeedingCheck() ([]*domain.Task, error) {
	return s.selectTasks(func(t *domain.Task) bool { return t.NeedsCheck() })
}

// TasksNeedingNotification returns open tasks whose notify-at time has
// passed.
func (s *TaskService) TasksNeedingNotification() ([]*domain.Task, error) {
	return s.selectTasks(func(t *domain.Task) bool { return t.NeedsNotification() })
}

func (s *TaskService) selectTasks(keep func(*domain.Task) bool) ([]*domain.Task, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return nil, err
	}
	var matched []*domain.Task
	for _, t := range tasks {
		if keep(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// TaskSummary is the aggregate view over all tasks.
type TaskSummary struct {
	Total      int
	ByStatus   map[domain.TaskStatus]int
	ByPriority map[domain.TaskPriority]int
	ByType     map[domain.TaskType]int
	Overdue    int
	NeedsCheck int
}

// Summary computes task counts by status, priority and type.
func (s *TaskService) Summary() (*TaskSummary, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return nil, err
	}

	summary := &TaskSummary{
		Total:      len(tasks),
		ByStatus:   make(map[domain.TaskStatus]int),
		ByPriority: make(map[domain.TaskPriority]int),
		ByType:     make(map[domain.TaskType]int),
	}
	for _, status := range domain.AllTaskStatuses() {
		summary.ByStatus[status] = 0
	}
	for _, priority := range domain.AllTaskPriorities() {
		summary.ByPriority[priority] = 0
	}
	for _, taskType := range domain.AllTaskTypes() {
		summary.ByType[taskType] = 0
	}

	for _, t := range tasks {
		summary.ByStatus[t.Status]++
		summary.ByPriority[t.Priority]++
		summary.ByType[t.Type]++
		if t.IsOverdue() {
			summary.Overdue++
		}
		if t.NeedsCheck() {
			summary.NeedsCheck++
		}
	}
	return summary, nil
}

func (s *TaskService) logEvent(action string, metadata map[string]interface{}) {
	if s.audit == nil {
		return
	}
	// Audit failures never block the operation itself.
	_ = s.audit.Log(action, s.actor, metadata)
}

func anyTagMatches(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
