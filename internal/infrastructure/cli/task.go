package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/pkg/application"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage individual tasks",
}

// Flag variables for task add
var (
	addDescription string
	addType        string
	addPriority    string
	addStatus      string
	addCheckFreq   string
	addETA         string
	addNotifyAt    string
	addTags        string
	addDeps        string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		params := application.CreateTaskParams{
			Title:        args[0],
			Description:  addDescription,
			Tags:         splitCommaList(addTags),
			Dependencies: splitCommaList(addDeps),
		}

		if addType != "" {
			taskType, err := domain.ParseTaskType(addType)
			if err != nil {
				return err
			}
			params.Type = taskType
		}
		if addPriority != "" {
			priority, err := domain.ParseTaskPriority(addPriority)
			if err != nil {
				return err
			}
			params.Priority = priority
		}
		if addStatus != "" {
			status, err := domain.ParseTaskStatus(addStatus)
			if err != nil {
				return err
			}
			params.Status = status
		}
		if addCheckFreq != "" {
			freq, err := domain.ParseCheckFrequency(addCheckFreq)
			if err != nil {
				return err
			}
			params.CheckFrequency = freq
		}
		if params.ETA, err = parseDatetime(addETA); err != nil {
			return err
		}
		if params.NotifyAt, err = parseDatetime(addNotifyAt); err != nil {
			return err
		}

		task, err := services.Tasks.CreateTask(params)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Created task: %s\n", idStyle.Render(task.ID))
		printTaskLine(task)
		return nil
	},
}

// Flag variables for task list
var (
	listStatus   string
	listType     string
	listPriority string
	listTags     string
	listSearch   string
	listShowDone bool
	listJSON     bool
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		filter := application.TaskFilter{
			Tags:   splitCommaList(listTags),
			Search: listSearch,
		}
		if listStatus != "" {
			if filter.Status, err = domain.ParseTaskStatus(listStatus); err != nil {
				return err
			}
		}
		if listType != "" {
			if filter.Type, err = domain.ParseTaskType(listType); err != nil {
				return err
			}
		}
		if listPriority != "" {
			if filter.Priority, err = domain.ParseTaskPriority(listPriority); err != nil {
				return err
			}
		}
		tasks, err := services.Tasks.FilterTasks(filter)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if !listShowDone && listStatus == "" {
			kept := tasks[:0]
			for _, t := range tasks {
				if t.Status != domain.StatusDone {
					kept = append(kept, t)
				}
			}
			tasks = kept
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tasks)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
		for _, t := range tasks {
			printTaskLine(t)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show detailed task information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		task, err := services.Tasks.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}
		printTaskDetail(task)
		return nil
	},
}

// Flag variables for task update
var (
	updateTitle       string
	updateDescription string
	updateType        string
	updatePriority    string
	updateStatus      string
	updateCheckFreq   string
	updateETA         string
	updateTags        string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		var params application.UpdateTaskParams
		if cmd.Flags().Changed("title") {
			params.Title = &updateTitle
		}
		if cmd.Flags().Changed("desc") {
			params.Description = &updateDescription
		}
		if updateType != "" {
			taskType, err := domain.ParseTaskType(updateType)
			if err != nil {
				return err
			}
			params.Type = &taskType
		}
		if updatePriority != "" {
			priority, err := domain.ParseTaskPriority(updatePriority)
			if err != nil {
				return err
			}
			params.Priority = &priority
		}
		if updateStatus != "" {
			status, err := domain.ParseTaskStatus(updateStatus)
			if err != nil {
				return err
			}
			params.Status = &status
		}
		if updateCheckFreq != "" {
			freq, err := domain.ParseCheckFrequency(updateCheckFreq)
			if err != nil {
				return err
			}
			params.CheckFrequency = &freq
		}
		if params.ETA, err = parseDatetime(updateETA); err != nil {
			return err
		}
		if updateTags != "" {
			params.Tags = splitCommaList(updateTags)
		}

		task, err := services.Tasks.UpdateTask(args[0], params)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		fmt.Printf("Updated task: %s\n", idStyle.Render(task.ID))
		printTaskLine(task)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		task, err := services.Tasks.MarkDone(args[0])
		if err != nil {
			return fmt.Errorf("failed to mark task done: %w", err)
		}
		fmt.Printf("Marked task as done: %s\n", idStyle.Render(task.ID))
		printTaskLine(task)
		return nil
	},
}

var taskNoteCmd = &cobra.Command{
	Use:   "note <task-id> <text>",
	Short: "Add a timestamped note to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		task, err := services.Tasks.AddNote(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}
		fmt.Printf("Added note to task: %s\n", idStyle.Render(task.ID))
		return nil
	},
}

var deleteYes bool

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		task, err := services.Tasks.GetTask(args[0])
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		if !deleteYes {
			fmt.Printf("Delete task %q? [y/N] ", task.Title)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if _, err := services.Tasks.DeleteTask(args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Printf("Deleted task: %s\n", args[0])
		return nil
	},
}

func printTaskLine(t *domain.Task) {
	eta := "-"
	if t.ETA != nil {
		eta = t.ETA.Format("2006-01-02")
		if t.IsOverdue() {
			eta = dangerStyle.Render(eta + " (overdue)")
		}
	}
	fmt.Printf("  %s  %-11s [%-6s] %-40s %s  ETA: %s\n",
		idStyle.Render(t.ID), styleStatus(t.Status), t.Priority, t.Title,
		subtleStyle.Render(string(t.Type)), eta)
}

func printTaskDetail(t *domain.Task) {
	const ts = "2006-01-02 15:04"

	fmt.Println(headerStyle.Render("Task: " + t.Title))
	fmt.Printf("ID:              %s\n", idStyle.Render(t.ID))
	fmt.Printf("Type:            %s\n", t.Type)
	fmt.Printf("Status:          %s\n", styleStatus(t.Status))
	fmt.Printf("Priority:        %s\n", t.Priority)
	fmt.Printf("Check Frequency: %s\n", t.CheckFrequency)
	fmt.Printf("Created:         %s\n", t.CreatedAt.Format(ts))
	fmt.Printf("Updated:         %s\n", t.UpdatedAt.Format(ts))

	if t.ETA != nil {
		eta := t.ETA.Format(ts)
		if t.IsOverdue() {
			eta = dangerStyle.Render(eta + " (overdue)")
		}
		fmt.Printf("ETA:             %s\n", eta)
	}
	if t.LastChecked != nil {
		fmt.Printf("Last Checked:    %s\n", t.LastChecked.Format(ts))
	}
	if t.NotifyAt != nil {
		fmt.Printf("Notify At:       %s\n", t.NotifyAt.Format(ts))
	}
	if len(t.Tags) > 0 {
		fmt.Printf("Tags:            %s\n", strings.Join(t.Tags, ", "))
	}
	if len(t.Dependencies) > 0 {
		fmt.Printf("Dependencies:    %s\n", strings.Join(t.Dependencies, ", "))
	}
	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", t.Description)
	}
	if len(t.Notes) > 0 {
		fmt.Println("\nNotes:")
		for _, note := range t.Notes {
			fmt.Printf("  %s\n", note)
		}
	}
}

func init() {
	taskAddCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "Task description")
	taskAddCmd.Flags().StringVarP(&addType, "type", "t", "", "Task type (ticket, cross_team, project, training_run, general)")
	taskAddCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (high, medium, low)")
	taskAddCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Status (todo, in_progress, waiting, blocked, done)")
	taskAddCmd.Flags().StringVarP(&addCheckFreq, "check-freq", "f", "", "Check frequency (daily, weekly, biweekly, monthly)")
	taskAddCmd.Flags().StringVarP(&addETA, "eta", "e", "", "Expected completion (e.g. '2026-01-20')")
	taskAddCmd.Flags().StringVarP(&addNotifyAt, "notify", "n", "", "Notification time (e.g. '2026-01-15 10:00')")
	taskAddCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
	taskAddCmd.Flags().StringVar(&addDeps, "deps", "", "Comma-separated dependency task ids")

	taskListCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	taskListCmd.Flags().StringVarP(&listType, "type", "t", "", "Filter by type")
	taskListCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority")
	taskListCmd.Flags().StringVar(&listTags, "tags", "", "Filter by tags (comma-separated, any match)")
	taskListCmd.Flags().StringVar(&listSearch, "search", "", "Search in title/description")
	taskListCmd.Flags().BoolVar(&listShowDone, "done", false, "Include done tasks")
	taskListCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	taskUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&updateDescription, "desc", "d", "", "New description")
	taskUpdateCmd.Flags().StringVarP(&updateType, "type", "t", "", "New type")
	taskUpdateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority")
	taskUpdateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status")
	taskUpdateCmd.Flags().StringVarP(&updateCheckFreq, "check-freq", "f", "", "New check frequency")
	taskUpdateCmd.Flags().StringVarP(&updateETA, "eta", "e", "", "New ETA")
	taskUpdateCmd.Flags().StringVar(&updateTags, "tags", "", "New tags (comma-separated, replaces existing)")

	taskDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskNoteCmd)
	taskCmd.AddCommand(taskDeleteCmd)

	RootCmd.AddCommand(taskCmd)
}
