package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/weekplan/pkg/domain/journal"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("WEEKPLAN_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		services, err := loadServices()
		if err != nil {
			return err
		}
		p := tea.NewProgram(newDashboardModel(services))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

var dashboardBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type dashboardModel struct {
	services *wiring.Services
	table    table.Model
	week     string
	overdue  int
	needs    int
	err      error
}

func newDashboardModel(services *wiring.Services) dashboardModel {
	m := dashboardModel{services: services}

	columns := []table.Column{
		{Title: "Status", Width: 11},
		{Title: "Priority", Width: 8},
		{Title: "Type", Width: 12},
		{Title: "Task", Width: 40},
		{Title: "ID", Width: 13},
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	m.table.SetStyles(s)

	m.refresh()
	return m
}

// refresh reloads the task table from the store.
func (m *dashboardModel) refresh() {
	m.err = nil

	tasks, err := m.services.Tasks.ListTasks()
	if err != nil {
		m.err = err
		return
	}

	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, table.Row{
			string(t.Status), string(t.Priority), string(t.Type), t.Title, t.ID,
		})
	}
	m.table.SetRows(rows)

	year, week := journal.CurrentWeek()
	m.week = journal.WeekLabel(year, week)

	summary, err := m.services.Tasks.Summary()
	if err != nil {
		m.err = err
		return
	}
	m.overdue = summary.Overdue
	m.needs = summary.NeedsCheck
}

func (m dashboardModel) Init() tea.Cmd { return nil }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.refresh()
			return m, nil
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render("Weekplan " + m.week)

	attention := okStyle.Render("All tasks up to date")
	if m.overdue > 0 || m.needs > 0 {
		attention = dangerStyle.Render(fmt.Sprintf("Overdue: %d", m.overdue)) +
			"   " + warnStyle.Render(fmt.Sprintf("Needs check: %d", m.needs))
	}

	return dashboardBaseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.table.View(),
			"",
			attention,
			subtleStyle.Render("r: refresh   q: quit"),
		),
	) + "\n"
}
