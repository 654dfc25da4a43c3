// Package backup manages timestamped copies of journal files under
// per-week directories, with count and age based retention.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

// backupTimeLayout names backup files after their creation time. Colons
// are avoided so the names stay portable.
const backupTimeLayout = "2006-01-02T15-04-05"

const metaSuffix = ".meta"

// ErrBackupNotFound reports a restore from a path with no backup file.
var ErrBackupNotFound = errors.New("backup file not found")

// Info describes one stored backup.
type Info struct {
	Path      string
	Timestamp time.Time
	Trigger   string
	Week      string
}

// metaFile is the JSON sidecar written next to each backup copy.
type metaFile struct {
	Trigger   string `json:"trigger"`
	Original  string `json:"original"`
	Timestamp string `json:"timestamp"`
	Week      string `json:"week"`
}

// Manager creates, lists, restores and expires journal backups. Layout:
//
//	<backupDir>/<yyyy>-W<ww>/<timestamp>.md
//	<backupDir>/<yyyy>-W<ww>/<timestamp>.meta
type Manager struct {
	backupDir         string
	maxBackupsPerWeek int
	retentionDays     int
}

// NewManager creates a backup manager. maxBackupsPerWeek bounds the
// copies kept per week directory; retentionDays bounds their age.
func NewManager(backupDir string, maxBackupsPerWeek, retentionDays int) *Manager {
	return &Manager{
		backupDir:         backupDir,
		maxBackupsPerWeek: maxBackupsPerWeek,
		retentionDays:     retentionDays,
	}
}

// BackupDir returns the backup root directory.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup copies the journal file into its week directory and
// writes the metadata sidecar. A missing journal is not an error: there
// is nothing to protect yet, so it returns "" and nil. trigger records
// what prompted the copy (sync, edit, delete, manual, pre-restore).
func (m *Manager) CreateBackup(journalPath, trigger string) (string, error) {
	// #nosec G304 -- journalPath comes from the store's own layout
	data, err := os.ReadFile(journalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read journal: %w", err)
	}

	week := strings.TrimSuffix(filepath.Base(journalPath), ".md")
	weekDir := filepath.Join(m.backupDir, week)
	if err := os.MkdirAll(weekDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := time.Now()
	stamp := now.Format(backupTimeLayout)

	backupPath := filepath.Join(weekDir, stamp+".md")
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	meta := metaFile{
		Trigger:   trigger,
		Original:  journalPath,
		Timestamp: now.Format(time.RFC3339),
		Week:      week,
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup metadata: %w", err)
	}
	metaPath := filepath.Join(weekDir, stamp+metaSuffix)
	if err := os.WriteFile(metaPath, metaData, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}

	if err := m.enforceRetention(weekDir); err != nil {
		return "", err
	}

	return backupPath, nil
}

// ListBackups returns the week's backups, newest first. Files whose
// names do not parse as timestamps are ignored; a missing or unreadable
// sidecar degrades the trigger to "unknown".
func (m *Manager) ListBackups(year, week int) ([]Info, error) {
	weekLabel := journal.WeekLabel(year, week)
	weekDir := filepath.Join(m.backupDir, weekLabel)

	entries, err := os.ReadDir(weekDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		stamp := strings.TrimSuffix(entry.Name(), ".md")
		ts, err := time.ParseInLocation(backupTimeLayout, stamp, time.Local)
		if err != nil {
			continue
		}

		trigger := "unknown"
		metaPath := filepath.Join(weekDir, stamp+metaSuffix)
		// #nosec G304 -- path derives from the backup directory listing
		if metaData, err := os.ReadFile(metaPath); err == nil {
			var meta metaFile
			if err := json.Unmarshal(metaData, &meta); err == nil && meta.Trigger != "" {
				trigger = meta.Trigger
			}
		}

		backups = append(backups, Info{
			Path:      filepath.Join(weekDir, entry.Name()),
			Timestamp: ts,
			Trigger:   trigger,
			Week:      weekLabel,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// LatestBackup returns the most recent backup for the week, or nil.
func (m *Manager) LatestBackup(year, week int) (*Info, error) {
	backups, err := m.ListBackups(year, week)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, nil
	}
	return &backups[0], nil
}

// RestoreBackup overwrites the journal with the backup's content. The
// current journal, if any, is backed up first with trigger
// "pre-restore"; its backup path is returned so the restore itself can
// be undone.
func (m *Manager) RestoreBackup(backupPath, journalPath string) (string, error) {
	// #nosec G304 -- backupPath was selected from ListBackups output
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBackupNotFound, backupPath)
	}

	preRestore, err := m.CreateBackup(journalPath, "pre-restore")
	if err != nil {
		return "", fmt.Errorf("failed to back up current journal: %w", err)
	}

	if err := os.WriteFile(journalPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to restore journal: %w", err)
	}

	return preRestore, nil
}

// CleanupOldBackups removes backups older than the retention window and
// prunes week directories left empty. It returns the number of backup
// copies removed.
func (m *Manager) CleanupOldBackups() (int, error) {
	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)
	removed := 0

	weekDirs, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read backup root: %w", err)
	}

	for _, weekEntry := range weekDirs {
		if !weekEntry.IsDir() {
			continue
		}
		weekDir := filepath.Join(m.backupDir, weekEntry.Name())

		files, err := os.ReadDir(weekDir)
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", weekDir, err)
		}
		for _, file := range files {
			if !strings.HasSuffix(file.Name(), ".md") {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				stamp := strings.TrimSuffix(file.Name(), ".md")
				os.Remove(filepath.Join(weekDir, file.Name()))
				os.Remove(filepath.Join(weekDir, stamp+metaSuffix))
				removed++
			}
		}

		remaining, err := os.ReadDir(weekDir)
		if err == nil && len(remaining) == 0 {
			os.Remove(weekDir)
		}
	}

	return removed, nil
}

// enforceRetention trims a week directory down to the per-week copy
// limit, dropping the oldest copies by modification time.
func (m *Manager) enforceRetention(weekDir string) error {
	if m.maxBackupsPerWeek <= 0 {
		return nil
	}

	files, err := os.ReadDir(weekDir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", weekDir, err)
	}

	type aged struct {
		name    string
		modTime time.Time
	}
	var copies []aged
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".md") {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		copies = append(copies, aged{name: file.Name(), modTime: info.ModTime()})
	}

	if len(copies) <= m.maxBackupsPerWeek {
		return nil
	}

	// Newest first; everything past the limit goes.
	sort.Slice(copies, func(i, j int) bool {
		return copies[i].modTime.After(copies[j].modTime)
	})
	for _, old := range copies[m.maxBackupsPerWeek:] {
		stamp := strings.TrimSuffix(old.name, ".md")
		os.Remove(filepath.Join(weekDir, old.name))
		os.Remove(filepath.Join(weekDir, stamp+metaSuffix))
	}

	return nil
}
