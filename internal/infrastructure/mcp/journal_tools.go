package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

func (s *Server) handleStartJournalDay(ctx context.Context, args struct{}) (any, error) {
	now := time.Now()
	day, err := s.services.Journal.StartDay(now)
	if err != nil {
		return nil, err
	}

	year, week := journal.WeekForDate(now)
	return map[string]any{
		"journal_path":  s.services.Store.JournalPath(year, week),
		"day":           now.Format("Monday"),
		"planned_tasks": day.Planned,
	}, nil
}

func (s *Server) handleEndJournalDay(ctx context.Context, args struct{}) (any, error) {
	now := time.Now()
	day, result, err := s.services.Journal.EndDay(now)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"day":             now.Format("Monday"),
		"completed_tasks": []string{},
		"blocked_tasks":   []string{},
	}
	if day != nil {
		payload["completed_tasks"] = day.Completed
		payload["blocked_tasks"] = day.Blocked
	}
	if result != nil {
		payload["sync"] = serializeSyncResult(result)
	}
	return payload, nil
}

func (s *Server) handleGetCurrentJournal(ctx context.Context, args struct{}) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	now := time.Now()
	year, week := journal.WeekForDate(now)

	// Seed the week if nothing exists yet so the agent gets a
	// document rather than an empty string.
	if !s.services.Store.JournalExists(year, week) {
		if _, err := s.services.Journal.StartDay(now); err != nil {
			return nil, err
		}
	}

	content, err := s.services.Store.ReadJournal(year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return map[string]any{
		"journal_path": s.services.Store.JournalPath(year, week),
		"year":         year,
		"week":         week,
		"content":      content,
	}, nil
}

func (s *Server) handleSyncJournal(ctx context.Context, args struct{}) (any, error) {
	result, err := s.syncJournal()
	if err != nil {
		return nil, err
	}
	return serializeSyncResult(result), nil
}

func (s *Server) handleGenerateWeekSummary(ctx context.Context, args struct{}) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	year, week := journal.CurrentWeek()
	summary, err := s.services.Journal.GenerateWeekSummary(year, week)
	if err != nil {
		return nil, err
	}
	return serializeWeeklySummary(summary), nil
}

type QuarterArgs struct {
	Year    int `json:"year" jsonschema:"description=Calendar year"`
	Quarter int `json:"quarter" jsonschema:"description=Quarter 1-4"`
}

func (s *Server) handleGetQuarterlySummary(ctx context.Context, args QuarterArgs) (any, error) {
	if _, err := s.syncJournal(); err != nil {
		return nil, err
	}

	summary, err := s.services.Journal.QuarterSummary(args.Year, args.Quarter)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"year":              summary.Year,
		"quarter":           summary.Quarter,
		"weeks_tracked":     summary.WeeksTracked,
		"total_completed":   len(summary.CompletedTasks),
		"total_in_progress": len(summary.InProgressTasks),
		"completed_tasks":   summary.CompletedTasks,
		"in_progress_tasks": summary.InProgressTasks,
		"blockers":          summary.Blockers,
	}, nil
}

type ListBackupsArgs struct {
	Year int `json:"year,omitempty" jsonschema:"description=Year, defaults to the current week"`
	Week int `json:"week,omitempty" jsonschema:"description=ISO week number, defaults to the current week"`
}

func (s *Server) handleListBackups(ctx context.Context, args ListBackupsArgs) (any, error) {
	if s.services.Backups == nil {
		return nil, fmt.Errorf("backups are disabled in the config")
	}

	year, week := args.Year, args.Week
	if year == 0 || week == 0 {
		year, week = journal.CurrentWeek()
	}

	backups, err := s.services.Backups.ListBackups(year, week)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(backups))
	for _, b := range backups {
		out = append(out, map[string]any{
			"path":      b.Path,
			"timestamp": b.Timestamp.Format(time.RFC3339),
			"trigger":   b.Trigger,
			"week":      b.Week,
		})
	}
	return out, nil
}

type RestoreBackupArgs struct {
	BackupPath string `json:"backup_path,omitempty" jsonschema:"description=Backup file to restore, defaults to the latest"`
	Year       int    `json:"year,omitempty" jsonschema:"description=Year, defaults to the current week"`
	Week       int    `json:"week,omitempty" jsonschema:"description=ISO week number, defaults to the current week"`
}

func (s *Server) handleRestoreBackup(ctx context.Context, args RestoreBackupArgs) (any, error) {
	if s.services.Backups == nil {
		return nil, fmt.Errorf("backups are disabled in the config")
	}

	year, week := args.Year, args.Week
	if year == 0 || week == 0 {
		year, week = journal.CurrentWeek()
	}

	backupPath := args.BackupPath
	if backupPath == "" {
		latest, err := s.services.Backups.LatestBackup(year, week)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("no backups for week %d, %d", week, year)
		}
		backupPath = latest.Path
	}

	preRestore, err := s.services.Backups.RestoreBackup(backupPath, s.services.Store.JournalPath(year, week))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"restored_from": backupPath,
		"pre_restore":   preRestore,
		"journal_path":  s.services.Store.JournalPath(year, week),
	}, nil
}
