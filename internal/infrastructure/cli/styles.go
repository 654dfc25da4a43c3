package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

// Shared styles for list and status output.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func styleStatus(status domain.TaskStatus) string {
	s := string(status)
	switch status {
	case domain.StatusDone:
		return okStyle.Render(s)
	case domain.StatusInProgress:
		return workingStyle.Render(s)
	case domain.StatusBlocked:
		return dangerStyle.Render(s)
	case domain.StatusWaiting:
		return warnStyle.Render(s)
	default:
		return s
	}
}
