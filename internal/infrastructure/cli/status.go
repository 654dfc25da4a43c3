package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a summary of all tracked tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		summary, err := services.Tasks.Summary()
		if err != nil {
			return fmt.Errorf("failed to compute summary: %w", err)
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		fmt.Println(headerStyle.Render("Task Summary"))
		fmt.Printf("Total Tasks: %d\n", summary.Total)

		fmt.Println("\nBy Status:")
		for _, status := range domain.AllTaskStatuses() {
			if count := summary.ByStatus[status]; count > 0 {
				fmt.Printf("  %-12s %d\n", status, count)
			}
		}

		fmt.Println("\nBy Priority:")
		for _, priority := range domain.AllTaskPriorities() {
			if count := summary.ByPriority[priority]; count > 0 {
				fmt.Printf("  %-12s %d\n", priority, count)
			}
		}

		fmt.Println("\nBy Type:")
		for _, taskType := range domain.AllTaskTypes() {
			if count := summary.ByType[taskType]; count > 0 {
				fmt.Printf("  %-12s %d\n", taskType, count)
			}
		}

		if summary.Overdue > 0 {
			fmt.Printf("\n%s %d\n", dangerStyle.Render("Overdue:"), summary.Overdue)
		}
		if summary.NeedsCheck > 0 {
			fmt.Printf("%s %d\n", warnStyle.Render("Needs Check:"), summary.NeedsCheck)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which tasks need attention",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		overdue, err := services.Tasks.OverdueTasks()
		if err != nil {
			return fmt.Errorf("failed to load overdue tasks: %w", err)
		}
		needsCheck, err := services.Tasks.TasksNeedingCheck()
		if err != nil {
			return fmt.Errorf("failed to load tasks needing check: %w", err)
		}
		needsNotification, err := services.Tasks.TasksNeedingNotification()
		if err != nil {
			return fmt.Errorf("failed to load notifications: %w", err)
		}

		if len(overdue)+len(needsCheck)+len(needsNotification) == 0 {
			fmt.Println(okStyle.Render("All tasks are up to date!"))
			return nil
		}

		if len(overdue) > 0 {
			fmt.Println(dangerStyle.Render(fmt.Sprintf("Overdue Tasks (%d):", len(overdue))))
			for _, t := range overdue {
				fmt.Printf("  - [%s] %s\n", idStyle.Render(t.ID), t.Title)
			}
		}
		if len(needsCheck) > 0 {
			fmt.Println(warnStyle.Render(fmt.Sprintf("\nTasks Needing Check (%d):", len(needsCheck))))
			for _, t := range needsCheck {
				lastChecked := "never"
				if t.LastChecked != nil {
					lastChecked = t.LastChecked.Format("2006-01-02 15:04")
				}
				fmt.Printf("  - [%s] %s (last checked: %s)\n", idStyle.Render(t.ID), t.Title, lastChecked)
			}
		}
		if len(needsNotification) > 0 {
			fmt.Printf("\nTasks With Pending Notifications (%d):\n", len(needsNotification))
			for _, t := range needsNotification {
				fmt.Printf("  - [%s] %s\n", idStyle.Render(t.ID), t.Title)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")

	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(checkCmd)
}
