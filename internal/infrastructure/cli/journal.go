package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/pkg/application"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

var journalDate string

func journalFlagDate() (time.Time, error) {
	if journalDate == "" {
		return time.Now(), nil
	}
	parsed, err := parseDatetime(journalDate)
	if err != nil {
		return time.Time{}, err
	}
	return *parsed, nil
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Work with the weekly journal",
	Long: `Work with the weekly journal.

The journal is the primary editing surface: check a task's box to mark
it done, add '- [ ] NEW: Title (type, priority)' lines to create tasks,
or delete a task's reference line to delete the task. Running 'journal'
without a subcommand opens the current week in your editor and syncs
when the editor exits.`,
	RunE: runJournalEdit,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the weekly journal in your editor and sync on exit",
	RunE:  runJournalEdit,
}

func runJournalEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	services, err := loadServicesWith(cfg)
	if err != nil {
		return err
	}
	date, err := journalFlagDate()
	if err != nil {
		return err
	}

	fmt.Println("Opening weekly journal...")
	path, err := services.Journal.OpenJournal(date, cfg.EditorCommand())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	year, week := journal.WeekForDate(date)
	fmt.Printf("Edited journal for week %d, %d (%s)\n", week, year, path)

	fmt.Println("Syncing journal with tasks...")
	result, err := services.Sync.SyncWeek(year, week)
	if err != nil {
		return fmt.Errorf("failed to sync journal: %w", err)
	}
	printSyncResult(result)
	return nil
}

var journalStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new day in the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		date, err := journalFlagDate()
		if err != nil {
			return err
		}

		day, err := services.Journal.StartDay(date)
		if err != nil {
			return fmt.Errorf("failed to start day: %w", err)
		}
		fmt.Printf("Started day: %s\n", date.Format("Monday, January 02, 2006"))
		fmt.Printf("  Planned tasks: %d\n", len(day.Planned))
		return nil
	},
}

var journalEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the day and sync tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		date, err := journalFlagDate()
		if err != nil {
			return err
		}

		day, result, err := services.Journal.EndDay(date)
		if err != nil {
			return fmt.Errorf("failed to end day: %w", err)
		}
		fmt.Printf("Ended day: %s\n", date.Format("Monday, January 02, 2006"))
		if day != nil {
			fmt.Printf("  Completed: %d tasks\n", len(day.Completed))
			fmt.Printf("  Planned: %d tasks\n", len(day.Planned))
		}
		printSyncResult(result)
		return nil
	},
}

var journalSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync journal edits with the task store",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		date, err := journalFlagDate()
		if err != nil {
			return err
		}

		fmt.Println("Syncing journal with tasks...")
		year, week := journal.WeekForDate(date)
		result, err := services.Sync.SyncWeek(year, week)
		if err != nil {
			return fmt.Errorf("failed to sync journal: %w", err)
		}
		printSyncResult(result)
		return nil
	},
}

var journalSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate and store the weekly summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		date, err := journalFlagDate()
		if err != nil {
			return err
		}

		fmt.Println("Generating weekly summary...")
		year, week := journal.WeekForDate(date)
		summary, err := services.Journal.GenerateWeekSummary(year, week)
		if err != nil {
			return fmt.Errorf("failed to generate summary: %w", err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Week %d, %d", week, year)))
		fmt.Printf("Period: %s - %s\n",
			summary.WeekStart.Format("Jan 02"), summary.WeekEnd.Format("Jan 02, 2006"))
		fmt.Printf("%s %d tasks\n", okStyle.Render("Completed:"), summary.CompletedCount())
		fmt.Printf("%s %d tasks\n", workingStyle.Render("In Progress:"), len(summary.TasksInProgress))
		if len(summary.Blockers) > 0 {
			fmt.Printf("%s %d\n", dangerStyle.Render("Blockers:"), len(summary.Blockers))
		}

		fmt.Printf("\nSummary saved to: %s\n", services.Store.SummaryPath(year, week))
		return nil
	},
}

func printSyncResult(result *application.SyncResult) {
	if result == nil {
		return
	}
	fmt.Printf("Journal synced: %d created, %d updated, %d deleted\n",
		len(result.Created), len(result.Updated), len(result.Deleted))
	for _, perr := range result.Errors {
		fmt.Printf("  %s\n", warnStyle.Render(perr.Error()))
	}
}

func init() {
	journalCmd.PersistentFlags().StringVarP(&journalDate, "date", "d", "", "Date inside the target week (defaults to today)")

	journalCmd.AddCommand(journalEditCmd)
	journalCmd.AddCommand(journalStartCmd)
	journalCmd.AddCommand(journalEndCmd)
	journalCmd.AddCommand(journalSyncCmd)
	journalCmd.AddCommand(journalSummaryCmd)

	RootCmd.AddCommand(journalCmd)
}
