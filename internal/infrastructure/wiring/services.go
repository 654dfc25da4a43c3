// Package wiring constructs the service graph shared by the CLI and
// the agent tool server.
package wiring

import (
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/config"
	"github.com/felixgeelhaar/weekplan/pkg/application"
	"github.com/felixgeelhaar/weekplan/pkg/backup"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

// Services bundles the application layer wired to one data directory.
type Services struct {
	Config  *config.Config
	Store   *storage.FilesystemStore
	Backups *backup.Manager
	Audit   *application.AuditService
	Tasks   *application.TaskService
	Sync    *application.SyncService
	Journal *application.JournalService
}

// BuildServices constructs all services in dependency order. actor
// names the driver in audit records ("human" for the CLI, "agent" for
// the tool server). Backups is nil when disabled in the config.
func BuildServices(cfg *config.Config, actor string) (*Services, error) {
	store := storage.NewFilesystemStore(cfg.DataPath())
	if err := store.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize data directory: %w", err)
	}

	eventLog, err := storage.NewEventLog(store.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	audit := application.NewAuditService(eventLog)

	defaults, err := taskDefaults(cfg)
	if err != nil {
		return nil, err
	}

	var backups *backup.Manager
	if cfg.Backup.Enabled {
		backups = backup.NewManager(
			filepath.Join(store.DataDir(), storage.BackupsDir),
			cfg.Backup.MaxBackupsPerWeek,
			cfg.Backup.RetentionDays,
		)
	}

	tasks := application.NewTaskService(store, audit, actor, defaults)
	sync := application.NewSyncService(store, tasks, backups, audit, actor)
	journal := application.NewJournalService(store, tasks, sync)

	return &Services{
		Config:  cfg,
		Store:   store,
		Backups: backups,
		Audit:   audit,
		Tasks:   tasks,
		Sync:    sync,
		Journal: journal,
	}, nil
}

// taskDefaults validates the configured task defaults up front so a
// typo in the config surfaces at startup, not at first task creation.
func taskDefaults(cfg *config.Config) (application.Defaults, error) {
	var defaults application.Defaults

	if cfg.Defaults.Priority != "" {
		priority, err := domain.ParseTaskPriority(cfg.Defaults.Priority)
		if err != nil {
			return defaults, fmt.Errorf("config defaults.priority: %w", err)
		}
		defaults.Priority = priority
	}
	if cfg.Defaults.CheckFrequency != "" {
		frequency, err := domain.ParseCheckFrequency(cfg.Defaults.CheckFrequency)
		if err != nil {
			return defaults, fmt.Errorf("config defaults.check_frequency: %w", err)
		}
		defaults.CheckFrequency = frequency
	}
	return defaults, nil
}
