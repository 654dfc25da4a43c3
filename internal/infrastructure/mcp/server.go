// Package mcp exposes task and journal operations to AI agents over
// the Model Context Protocol. Every tool reconciles the current week's
// journal before it runs, so agents always see the state a hand edit
// left behind.
package mcp

import (
	"context"
	"fmt"

	mcp "github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/config"
	"github.com/felixgeelhaar/weekplan/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/weekplan/pkg/application"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// AgentActor attributes tool-driven writes in the audit trail.
const AgentActor = "agent"

type Server struct {
	mcpServer *mcp.Server
	services  *wiring.Services
}

func NewServer(cfg *config.Config) (*Server, error) {
	services, err := wiring.BuildServices(cfg, AgentActor)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	info := mcp.ServerInfo{
		Name:    "weekplan",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Weekplan MCP Server"),
			mcp.WithDescription("Weekplan exposes a journal-first personal task tracker to MCP clients."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to create, query and update tasks, and to drive the weekly journal. The journal is authoritative: every tool syncs it before running."),
		),
		services: services,
	}

	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("weekplan_create_task").
		Description("Create a new task").
		Handler(s.handleCreateTask)

	s.mcpServer.Tool("weekplan_list_tasks").
		Description("List tasks with optional status/type/priority/tag filters").
		Handler(s.handleListTasks)

	s.mcpServer.Tool("weekplan_get_task").
		Description("Get a single task by id").
		Handler(s.handleGetTask)

	s.mcpServer.Tool("weekplan_update_task").
		Description("Update fields of an existing task").
		Handler(s.handleUpdateTask)

	s.mcpServer.Tool("weekplan_delete_task").
		Description("Delete a task by id").
		Handler(s.handleDeleteTask)

	s.mcpServer.Tool("weekplan_add_task_note").
		Description("Append a timestamped note to a task").
		Handler(s.handleAddTaskNote)

	s.mcpServer.Tool("weekplan_mark_task_done").
		Description("Mark a task as done").
		Handler(s.handleMarkTaskDone)

	s.mcpServer.Tool("weekplan_mark_task_in_progress").
		Description("Mark a task as in progress").
		Handler(s.handleMarkTaskInProgress)

	s.mcpServer.Tool("weekplan_get_overdue_tasks").
		Description("Get tasks past their ETA that are not done").
		Handler(s.handleGetOverdueTasks)

	s.mcpServer.Tool("weekplan_get_tasks_needing_check").
		Description("Get tasks due for their periodic check").
		Handler(s.handleGetTasksNeedingCheck)

	s.mcpServer.Tool("weekplan_get_task_summary").
		Description("Get task counts by status, type and priority").
		Handler(s.handleGetTaskSummary)

	s.mcpServer.Tool("weekplan_search_tasks").
		Description("Search tasks by title and description text").
		Handler(s.handleSearchTasks)

	s.mcpServer.Tool("weekplan_start_journal_day").
		Description("Start today's journal section, seeding tasks that need attention").
		Handler(s.handleStartJournalDay)

	s.mcpServer.Tool("weekplan_end_journal_day").
		Description("End today's journal section and commit checkbox state to tasks").
		Handler(s.handleEndJournalDay)

	s.mcpServer.Tool("weekplan_get_current_journal").
		Description("Get the current week's journal markdown").
		Handler(s.handleGetCurrentJournal)

	s.mcpServer.Tool("weekplan_sync_journal").
		Description("Reconcile the current week's journal with the task store").
		Handler(s.handleSyncJournal)

	s.mcpServer.Tool("weekplan_generate_week_summary").
		Description("Generate and store the weekly summary").
		Handler(s.handleGenerateWeekSummary)

	s.mcpServer.Tool("weekplan_get_quarterly_summary").
		Description("Aggregate weekly journals into a quarterly summary").
		Handler(s.handleGetQuarterlySummary)

	s.mcpServer.Tool("weekplan_list_backups").
		Description("List journal backups for a week").
		Handler(s.handleListBackups)

	s.mcpServer.Tool("weekplan_restore_backup").
		Description("Restore a week's journal from a backup").
		Handler(s.handleRestoreBackup)
}

// syncJournal reconciles the current week before a tool touches the
// store. Parse errors do not abort the tool; they ride along in the
// result for the caller that asked for a sync explicitly.
func (s *Server) syncJournal() (*application.SyncResult, error) {
	result, err := s.services.Sync.SyncCurrentWeek()
	if err != nil {
		return nil, fmt.Errorf("failed to sync journal: %w", err)
	}
	return result, nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
