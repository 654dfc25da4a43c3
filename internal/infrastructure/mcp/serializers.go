package mcp

import (
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/application"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

// taskPayload is the JSON shape tools return for a task. Dates are
// RFC3339 strings, notes their rendered bullet form.
type taskPayload struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	CheckFrequency string   `json:"check_frequency"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
	ETA            *string  `json:"eta"`
	LastChecked    *string  `json:"last_checked"`
	NotifyAt       *string  `json:"notify_at"`
	Tags           []string `json:"tags"`
	Dependencies   []string `json:"dependencies"`
	Notes          []string `json:"notes"`
}

func serializeTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func serializeTask(t *domain.Task) taskPayload {
	notes := make([]string, 0, len(t.Notes))
	for _, n := range t.Notes {
		notes = append(notes, n.String())
	}
	return taskPayload{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Type:           string(t.Type),
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		CheckFrequency: string(t.CheckFrequency),
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
		ETA:            serializeTime(t.ETA),
		LastChecked:    serializeTime(t.LastChecked),
		NotifyAt:       serializeTime(t.NotifyAt),
		Tags:           t.Tags,
		Dependencies:   t.Dependencies,
		Notes:          notes,
	}
}

func serializeTaskList(tasks []*domain.Task) []taskPayload {
	out := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, serializeTask(t))
	}
	return out
}

type syncPayload struct {
	Created    []string `json:"created"`
	Updated    []string `json:"updated"`
	Deleted    []string `json:"deleted"`
	Errors     []string `json:"errors"`
	BackupPath string   `json:"backup_path,omitempty"`
}

func serializeSyncResult(r *application.SyncResult) syncPayload {
	errs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e.Error())
	}
	return syncPayload{
		Created:    r.Created,
		Updated:    r.Updated,
		Deleted:    r.Deleted,
		Errors:     errs,
		BackupPath: r.BackupPath,
	}
}

type summaryPayload struct {
	WeekStart       string   `json:"week_start"`
	WeekEnd         string   `json:"week_end"`
	TasksCompleted  []string `json:"tasks_completed"`
	TasksInProgress []string `json:"tasks_in_progress"`
	Blockers        []string `json:"blockers"`
}

func serializeWeeklySummary(s *journal.WeeklySummary) summaryPayload {
	return summaryPayload{
		WeekStart:       s.WeekStart.Format("2006-01-02"),
		WeekEnd:         s.WeekEnd.Format("2006-01-02"),
		TasksCompleted:  s.TasksCompleted,
		TasksInProgress: s.TasksInProgress,
		Blockers:        s.Blockers,
	}
}
