package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

var backupDate string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage journal backups",
}

func backupServices() (*wiring.Services, error) {
	services, err := loadServices()
	if err != nil {
		return nil, err
	}
	if services.Backups == nil {
		return nil, fmt.Errorf("backups are disabled in the config")
	}
	return services, nil
}

func backupWeek() (int, int, error) {
	if backupDate == "" {
		year, week := journal.CurrentWeek()
		return year, week, nil
	}
	parsed, err := parseDatetime(backupDate)
	if err != nil {
		return 0, 0, err
	}
	year, week := journal.WeekForDate(*parsed)
	return year, week, nil
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := backupServices()
		if err != nil {
			return err
		}
		year, week, err := backupWeek()
		if err != nil {
			return err
		}

		backups, err := services.Backups.ListBackups(year, week)
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if len(backups) == 0 {
			fmt.Printf("No backups for week %d, %d.\n", week, year)
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Backups for week %d, %d (%d)", week, year, len(backups))))
		for _, b := range backups {
			fmt.Printf("  %s  trigger=%-11s %s\n",
				b.Timestamp.Format("2006-01-02 15:04:05"), b.Trigger, subtleStyle.Render(b.Path))
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-path]",
	Short: "Restore a journal from a backup (defaults to the latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := backupServices()
		if err != nil {
			return err
		}
		year, week, err := backupWeek()
		if err != nil {
			return err
		}

		backupPath := ""
		if len(args) > 0 {
			backupPath = args[0]
		} else {
			latest, err := services.Backups.LatestBackup(year, week)
			if err != nil {
				return fmt.Errorf("failed to find latest backup: %w", err)
			}
			if latest == nil {
				return fmt.Errorf("no backups for week %d, %d", week, year)
			}
			backupPath = latest.Path
		}

		journalPath := services.Store.JournalPath(year, week)
		preRestore, err := services.Backups.RestoreBackup(backupPath, journalPath)
		if err != nil {
			return fmt.Errorf("failed to restore backup: %w", err)
		}

		fmt.Printf("Restored journal from: %s\n", backupPath)
		if preRestore != "" {
			fmt.Printf("Previous content saved to: %s\n", subtleStyle.Render(preRestore))
		}
		return nil
	},
}

var backupCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove backups older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := backupServices()
		if err != nil {
			return err
		}
		removed, err := services.Backups.CleanupOldBackups()
		if err != nil {
			return fmt.Errorf("failed to clean up backups: %w", err)
		}
		fmt.Printf("Removed %d old backups.\n", removed)
		return nil
	},
}

func init() {
	backupCmd.PersistentFlags().StringVarP(&backupDate, "date", "d", "", "Date inside the target week (defaults to today)")

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupCleanupCmd)

	RootCmd.AddCommand(backupCmd)
}
