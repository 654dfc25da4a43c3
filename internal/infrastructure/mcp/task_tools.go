package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/application"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

func parseToolTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("cannot parse time %q, use RFC3339 or '2006-01-02'", value)
}

type CreateTaskArgs struct {
	Title          string   `json:"title" jsonschema:"description=Task title"`
	Description    string   `json:"description,omitempty" jsonschema:"description=Task description"`
	Type           string   `json:"type,omitempty" jsonschema:"description=Task type (ticket cross_team project training_run general)"`
	Priority       string   `json:"priority,omitempty" jsonschema:"description=Priority (high medium low)"`
	Status         string   `json:"status,omitempty" jsonschema:"description=Status (todo in_progress waiting blocked done)"`
	CheckFrequency string   `json:"check_frequency,omitempty" jsonschema:"description=Check frequency (daily weekly biweekly monthly)"`
	ETA            string   `json:"eta,omitempty" jsonschema:"description=Expected completion time, RFC3339 or YYYY-MM-DD"`
	NotifyAt       string   `json:"notify_at,omitempty" jsonschema:"description=Notification time, RFC3339 or YYYY-MM-DD"`
	Tags           []string `json:"tags,omitempty" jsonschema:"description=Tags"`
	Dependencies   []string `json:"dependencies,omitempty" jsonschema:"description=Dependency task ids"`
}

func (s *Server) handleCreateTask(ctx context.Context, args CreateTaskArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	params := application.CreateTaskParams{
		Title:        args.Title,
		Description:  args.Description,
		Tags:         args.Tags,
		Dependencies: args.Dependencies,
	}

	var err error
	if args.Type != "" {
		if params.Type, err = domain.ParseTaskType(args.Type); err != nil {
			return nil, err
		}
	}
	if args.Priority != "" {
		if params.Priority, err = domain.ParseTaskPriority(args.Priority); err != nil {
			return nil, err
		}
	}
	if args.Status != "" {
		if params.Status, err = domain.ParseTaskStatus(args.Status); err != nil {
			return nil, err
		}
	}
	if args.CheckFrequency != "" {
		if params.CheckFrequency, err = domain.ParseCheckFrequency(args.CheckFrequency); err != nil {
			return nil, err
		}
	}
	if params.ETA, err = parseToolTime(args.ETA); err != nil {
		return nil, err
	}
	if params.NotifyAt, err = parseToolTime(args.NotifyAt); err != nil {
		return nil, err
	}

	task, err := s.services.Tasks.CreateTask(params)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

type ListTasksArgs struct {
	Status   string   `json:"status,omitempty" jsonschema:"description=Filter by status"`
	Type     string   `json:"type,omitempty" jsonschema:"description=Filter by type"`
	Priority string   `json:"priority,omitempty" jsonschema:"description=Filter by priority"`
	Tags     []string `json:"tags,omitempty" jsonschema:"description=Filter by tags, any match"`
}

func (s *Server) handleListTasks(ctx context.Context, args ListTasksArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	filter := application.TaskFilter{Tags: args.Tags}
	var err error
	if args.Status != "" {
		if filter.Status, err = domain.ParseTaskStatus(args.Status); err != nil {
			return nil, err
		}
	}
	if args.Type != "" {
		if filter.Type, err = domain.ParseTaskType(args.Type); err != nil {
			return nil, err
		}
	}
	if args.Priority != "" {
		if filter.Priority, err = domain.ParseTaskPriority(args.Priority); err != nil {
			return nil, err
		}
	}

	tasks, err := s.services.Tasks.FilterTasks(filter)
	if err != nil {
		return nil, err
	}
	return serializeTaskList(tasks), nil
}

type TaskIDArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=Task id, e.g. task-1a2b3c4d"`
}

func (s *Server) handleGetTask(ctx context.Context, args TaskIDArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	task, err := s.services.Tasks.GetTask(args.TaskID)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

type UpdateTaskArgs struct {
	TaskID         string   `json:"task_id" jsonschema:"description=Task id"`
	Title          *string  `json:"title,omitempty" jsonschema:"description=New title"`
	Description    *string  `json:"description,omitempty" jsonschema:"description=New description"`
	Type           string   `json:"type,omitempty" jsonschema:"description=New type"`
	Priority       string   `json:"priority,omitempty" jsonschema:"description=New priority"`
	Status         string   `json:"status,omitempty" jsonschema:"description=New status"`
	CheckFrequency string   `json:"check_frequency,omitempty" jsonschema:"description=New check frequency"`
	ETA            string   `json:"eta,omitempty" jsonschema:"description=New ETA"`
	Tags           []string `json:"tags,omitempty" jsonschema:"description=Replacement tag list"`
}

func (s *Server) handleUpdateTask(ctx context.Context, args UpdateTaskArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	params := application.UpdateTaskParams{
		Title:       args.Title,
		Description: args.Description,
		Tags:        args.Tags,
	}

	var err error
	if args.Type != "" {
		taskType, err := domain.ParseTaskType(args.Type)
		if err != nil {
			return nil, err
		}
		params.Type = &taskType
	}
	if args.Priority != "" {
		priority, err := domain.ParseTaskPriority(args.Priority)
		if err != nil {
			return nil, err
		}
		params.Priority = &priority
	}
	if args.Status != "" {
		status, err := domain.ParseTaskStatus(args.Status)
		if err != nil {
			return nil, err
		}
		params.Status = &status
	}
	if args.CheckFrequency != "" {
		freq, err := domain.ParseCheckFrequency(args.CheckFrequency)
		if err != nil {
			return nil, err
		}
		params.CheckFrequency = &freq
	}
	if params.ETA, err = parseToolTime(args.ETA); err != nil {
		return nil, err
	}

	task, err := s.services.Tasks.UpdateTask(args.TaskID, params)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

func (s *Server) handleDeleteTask(ctx context.Context, args TaskIDArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	deleted, err := s.services.Tasks.DeleteTask(args.TaskID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"deleted": deleted, "task_id": args.TaskID}, nil
}

type AddNoteArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=Task id"`
	Note   string `json:"note" jsonschema:"description=Note text"`
}

func (s *Server) handleAddTaskNote(ctx context.Context, args AddNoteArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	task, err := s.services.Tasks.AddNote(args.TaskID, args.Note)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

func (s *Server) handleMarkTaskDone(ctx context.Context, args TaskIDArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	task, err := s.services.Tasks.MarkDone(args.TaskID)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

func (s *Server) handleMarkTaskInProgress(ctx context.Context, args TaskIDArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	task, err := s.services.Tasks.MarkInProgress(args.TaskID)
	if err != nil {
		return nil, err
	}
	return serializeTask(task), nil
}

func (s *Server) handleGetOverdueTasks(ctx context.Context, args struct{}) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	tasks, err := s.services.Tasks.OverdueTasks()
	if err != nil {
		return nil, err
	}
	return serializeTaskList(tasks), nil
}

func (s *Server) handleGetTasksNeedingCheck(ctx context.Context, args struct{}) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	tasks, err := s.services.Tasks.TasksNeedingCheck()
	if err != nil {
		return nil, err
	}
	return serializeTaskList(tasks), nil
}

func (s *Server) handleGetTaskSummary(ctx context.Context, args struct{}) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	summary, err := s.services.Tasks.Summary()
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	for k, v := range summary.ByStatus {
		if v > 0 {
			byStatus[string(k)] = v
		}
	}
	byPriority := map[string]int{}
	for k, v := range summary.ByPriority {
		if v > 0 {
			byPriority[string(k)] = v
		}
	}
	byType := map[string]int{}
	for k, v := range summary.ByType {
		if v > 0 {
			byType[string(k)] = v
		}
	}

	return map[string]any{
		"total":       summary.Total,
		"by_status":   byStatus,
		"by_priority": byPriority,
		"by_type":     byType,
		"overdue":     summary.Overdue,
		"needs_check": summary.NeedsCheck,
	}, nil
}

type SearchTasksArgs struct {
	Query string `json:"query" jsonschema:"description=Text to search in title and description"`
}

func (s *Server) handleSearchTasks(ctx context.Context, args SearchTasksArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}
	tasks, err := s.services.Tasks.FilterTasks(application.TaskFilter{Search: args.Query})
	if err != nil {
		return nil, err
	}
	return serializeTaskList(tasks), nil
}
