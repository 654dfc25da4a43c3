package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/watch"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the journal directory and sync on every edit",
	Long: `Watch the journal directory and sync on every edit.

Whenever a weekly journal file is saved, the edit is reconciled with
the task store after a short debounce window. Leave this running in a
terminal while you edit journals by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		journalDir := filepath.Join(services.Store.DataDir(), storage.JournalDir)
		watcher, err := watch.NewJournalWatcher(journalDir, watchDebounce, func(path string) {
			year, week, ok := weekFromJournalPath(path)
			if !ok {
				return
			}
			result, err := services.Sync.SyncWeek(year, week)
			if err != nil {
				fmt.Printf("Sync failed at %s: %v\n", time.Now().Format("15:04:05"), err)
				return
			}
			fmt.Printf("Journal change detected at %s\n", time.Now().Format("15:04:05"))
			printSyncResult(result)
		})
		if err != nil {
			return err
		}

		fmt.Printf("Watching %s for changes...\n", journalDir)
		return watcher.Run(cmd.Context())
	},
}

// weekFromJournalPath extracts (year, week) from a 2026-W02.md filename.
func weekFromJournalPath(path string) (int, int, bool) {
	base := filepath.Base(path)
	if len(base) != len("2006-W02.md") {
		return 0, 0, false
	}
	year, err := strconv.Atoi(base[:4])
	if err != nil {
		return 0, 0, false
	}
	week, err := strconv.Atoi(base[6:8])
	if err != nil {
		return 0, 0, false
	}
	return year, week, true
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "How long edits must settle before a sync runs")
	RootCmd.AddCommand(watchCmd)
}
