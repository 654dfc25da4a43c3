package application

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/felixgeelhaar/weekplan/pkg/backup"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

// SyncResult reports one reconciliation pass.
type SyncResult struct {
	Created    []string
	Updated    []string
	Deleted    []string
	Errors     []journal.ParseError
	BackupPath string
}

// Changed reports whether the pass mutated any task record.
func (r *SyncResult) Changed() bool {
	return len(r.Created)+len(r.Updated)+len(r.Deleted) > 0
}

// SyncService reconciles hand-edited journal text with the task store.
// The journal is authoritative for task existence: a stored task whose
// reference disappears from the journal is deleted.
type SyncService struct {
	store   *storage.FilesystemStore
	tasks   *TaskService
	backups *backup.Manager
	audit   domain.AuditLogger
	actor   string
}

// NewSyncService creates the reconciliation orchestrator. backups may
// be nil when snapshots are disabled; audit may be nil.
func NewSyncService(store *storage.FilesystemStore, tasks *TaskService, backups *backup.Manager, audit domain.AuditLogger, actor string) *SyncService {
	return &SyncService{store: store, tasks: tasks, backups: backups, audit: audit, actor: actor}
}

// SyncCurrentWeek reconciles the current ISO week's journal.
func (s *SyncService) SyncCurrentWeek() (*SyncResult, error) {
	year, week := journal.CurrentWeek()
	return s.SyncWeek(year, week)
}

// SyncWeek runs one full reconciliation pass over the week's journal.
// The step order is load-bearing: creation must precede status sync so
// freshly created tasks are visible to it, and status sync must precede
// deletion so reverts land before records disappear.
func (s *SyncService) SyncWeek(year, week int) (*SyncResult, error) {
	result := &SyncResult{}

	content, err := s.store.ReadJournal(year, week)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing to reconcile yet.
			return result, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	// The prior id set decides deletions below: existence before this
	// pass is what matters, not appearance in today's text.
	knownBefore, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	entries, parseErrs := journal.DetectNewTasks(content)
	result.Errors = parseErrs

	// Creation, splicing replacements in reverse document order so
	// earlier spans stay valid while later ones are rewritten.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		task, err := s.tasks.CreateTask(CreateTaskParams{
			Title:    entry.Title,
			Type:     entry.Type,
			Priority: entry.Priority,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create task from journal entry: %w", err)
		}
		content = content[:entry.Start] + journal.ReferenceLine(task) + content[entry.End:]
		result.Created = append(result.Created, task.ID)
	}
	reverseStrings(result.Created)

	// Status sync against the post-creation store state.
	checkboxes := journal.ParseCheckboxes(content)
	for _, id := range sortedKeys(checkboxes) {
		task, err := s.store.GetTask(id)
		if err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				continue
			}
			return nil, err
		}

		checked := checkboxes[id]
		switch {
		case checked && task.Status != domain.StatusDone:
			if _, err := s.tasks.MarkDone(id); err != nil {
				return nil, err
			}
			result.Updated = append(result.Updated, id)
		case !checked && task.Status == domain.StatusDone:
			status := domain.StatusTodo
			if _, err := s.tasks.UpdateTask(id, UpdateTaskParams{Status: &status}); err != nil {
				return nil, err
			}
			result.Updated = append(result.Updated, id)
		}
	}

	// Deletion: previously known tasks no longer referenced anywhere.
	referenced := journal.ReferencedTaskIDs(content)
	for _, id := range sortedTaskIDs(knownBefore) {
		if _, ok := referenced[id]; ok {
			continue
		}
		deleted, err := s.tasks.DeleteTask(id)
		if err != nil {
			return nil, err
		}
		if deleted {
			result.Deleted = append(result.Deleted, id)
		}
	}

	// Rebuild the document model against the now-current store and
	// settle each day's completed list from the checkbox map.
	tasksByID, err := s.store.LoadAllTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to reload tasks: %w", err)
	}
	doc := journal.New(year, week)
	doc.Parse(content, tasksByID)
	for _, day := range doc.Days {
		var completed []string
		for _, id := range day.Planned {
			if checkboxes[id] {
				completed = append(completed, id)
			}
		}
		day.Completed = completed
	}

	// Snapshot the previous on-disk text before it is overwritten.
	if s.backups != nil {
		backupPath, err := s.backups.CreateBackup(s.store.JournalPath(year, week), "sync")
		if err != nil {
			return nil, fmt.Errorf("failed to back up journal: %w", err)
		}
		result.BackupPath = backupPath
	}

	if err := s.store.WriteJournal(year, week, doc.Render(tasksByID)); err != nil {
		return nil, fmt.Errorf("failed to write journal: %w", err)
	}

	if s.audit != nil && result.Changed() {
		_ = s.audit.Log("journal.synced", s.actor, map[string]interface{}{
			"week":    journal.WeekLabel(year, week),
			"created": len(result.Created),
			"updated": len(result.Updated),
			"deleted": len(result.Deleted),
		})
	}

	return result, nil
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTaskIDs(m map[string]*domain.Task) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
