// Package storage persists tasks, journals and audit events under a
// single data directory. Tasks are individual markdown files with YAML
// frontmatter so they stay hand-editable; journals are plain markdown.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

const (
	TasksDir   = "tasks"
	JournalDir = "journal"
	BackupsDir = "backups"
	EventsFile = "events.jsonl"
)

// FilesystemStore implements domain.TaskRepository on a directory tree:
//
//	<data>/tasks/<id>.md     one task per file
//	<data>/journal/<yyyy>-W<ww>.md
//	<data>/backups/...       managed by pkg/backup
//	<data>/events.jsonl      append-only audit log
type FilesystemStore struct {
	dataDir     string
	retryConfig retry.Config
}

// NewFilesystemStore creates a store rooted at dataDir. The directory
// tree is created by Initialize, not here.
func NewFilesystemStore(dataDir string) *FilesystemStore {
	return &FilesystemStore{
		dataDir: dataDir,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// DataDir returns the store's root directory.
func (s *FilesystemStore) DataDir() string {
	return s.dataDir
}

// Initialize creates the data directory tree.
func (s *FilesystemStore) Initialize() error {
	for _, dir := range []string{
		s.dataDir,
		filepath.Join(s.dataDir, TasksDir),
		filepath.Join(s.dataDir, JournalDir),
		filepath.Join(s.dataDir, BackupsDir),
	} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// TaskPath returns the file path for a task id.
func (s *FilesystemStore) TaskPath(id string) string {
	return filepath.Join(s.dataDir, TasksDir, id+".md")
}

// GetTask loads a single task or returns domain.ErrTaskNotFound.
func (s *FilesystemStore) GetTask(id string) (*domain.Task, error) {
	if !domain.ValidTaskID(id) {
		return nil, fmt.Errorf("invalid task id %q: %w", id, domain.ErrTaskNotFound)
	}
	if !s.TaskExists(id) {
		return nil, domain.ErrTaskNotFound
	}

	retryer := retry.New[*domain.Task](s.retryConfig)
	return retryer.Do(context.Background(), func(ctx context.Context) (*domain.Task, error) {
		// #nosec G304 -- id is validated against the task id pattern
		data, err := os.ReadFile(s.TaskPath(id))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, domain.ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to read task file: %w", err)
		}
		task, err := unmarshalTask(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse task %s: %w", id, err)
		}
		return task, nil
	})
}

// SaveTask writes the task file, overwriting any previous version.
func (s *FilesystemStore) SaveTask(task *domain.Task) error {
	if !domain.ValidTaskID(task.ID) {
		return fmt.Errorf("invalid task id %q", task.ID)
	}

	data, err := marshalTask(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task %s: %w", task.ID, err)
	}

	if err := os.MkdirAll(filepath.Join(s.dataDir, TasksDir), 0700); err != nil {
		return fmt.Errorf("failed to create tasks directory: %w", err)
	}
	return os.WriteFile(s.TaskPath(task.ID), data, 0600)
}

// DeleteTask removes the task file. It returns false when no task with
// that id was stored.
func (s *FilesystemStore) DeleteTask(id string) (bool, error) {
	if !domain.ValidTaskID(id) {
		return false, nil
	}
	err := os.Remove(s.TaskPath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return true, nil
}

// LoadAllTasks reads every task file under tasks/. Files that fail to
// parse are skipped with a warning on stderr so one corrupted record
// never hides the rest.
func (s *FilesystemStore) LoadAllTasks() (map[string]*domain.Task, error) {
	tasks := make(map[string]*domain.Task)

	entries, err := os.ReadDir(filepath.Join(s.dataDir, TasksDir))
	if err != nil {
		if os.IsNotExist(err) {
			return tasks, nil
		}
		return nil, fmt.Errorf("failed to read tasks directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dataDir, TasksDir, entry.Name())
		// #nosec G304 -- path is constrained to the tasks directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load task from %s: %v\n", path, err)
			continue
		}
		task, err := unmarshalTask(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load task from %s: %v\n", path, err)
			continue
		}
		tasks[task.ID] = task
	}

	return tasks, nil
}

// TaskExists reports whether a task file for id is stored.
func (s *FilesystemStore) TaskExists(id string) bool {
	if !domain.ValidTaskID(id) {
		return false
	}
	_, err := os.Stat(s.TaskPath(id))
	return err == nil
}

// JournalPath returns the journal file path for an ISO (year, week).
func (s *FilesystemStore) JournalPath(year, week int) string {
	return filepath.Join(s.dataDir, JournalDir, journal.FileName(year, week))
}

// SummaryPath returns the standalone summary file path for an ISO
// (year, week).
func (s *FilesystemStore) SummaryPath(year, week int) string {
	return filepath.Join(s.dataDir, JournalDir, journal.SummaryFileName(year, week))
}

// JournalExists reports whether the week's journal file is stored.
func (s *FilesystemStore) JournalExists(year, week int) bool {
	_, err := os.Stat(s.JournalPath(year, week))
	return err == nil
}

// ReadJournal returns the raw journal markdown for the week. A missing
// journal is reported via os.IsNotExist on the returned error.
func (s *FilesystemStore) ReadJournal(year, week int) (string, error) {
	if !s.JournalExists(year, week) {
		return "", os.ErrNotExist
	}
	retryer := retry.New[string](s.retryConfig)
	return retryer.Do(context.Background(), func(ctx context.Context) (string, error) {
		data, err := os.ReadFile(s.JournalPath(year, week))
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
}

// WriteJournal persists the week's journal markdown.
func (s *FilesystemStore) WriteJournal(year, week int, content string) error {
	if err := os.MkdirAll(filepath.Join(s.dataDir, JournalDir), 0700); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	return os.WriteFile(s.JournalPath(year, week), []byte(content), 0600)
}

// WriteSummary persists the week's standalone summary markdown.
func (s *FilesystemStore) WriteSummary(year, week int, content string) error {
	if err := os.MkdirAll(filepath.Join(s.dataDir, JournalDir), 0700); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	return os.WriteFile(s.SummaryPath(year, week), []byte(content), 0600)
}

// ListJournalWeeks returns the (year, week) pairs of every stored
// journal file, in directory order.
func (s *FilesystemStore) ListJournalWeeks() ([][2]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, JournalDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var weeks [][2]int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := journalFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		weeks = append(weeks, [2]int{year, week})
	}
	return weeks, nil
}

// journalFileRe matches journal filenames, excluding summary files.
var journalFileRe = regexp.MustCompile(`^(\d{4})-W(\d{2})\.md$`)
