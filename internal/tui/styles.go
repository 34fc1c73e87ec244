package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	rowStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57"))
	selectedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	facetStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Padding(0, 1)
	activeFacetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("60")).Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

var statusColors = map[client.Status]lipgloss.Color{
	client.StatusRejected:    lipgloss.Color("203"),
	client.StatusPayment:     lipgloss.Color("114"),
	client.StatusPending:     lipgloss.Color("221"),
	client.StatusFollowUp:    lipgloss.Color("75"),
	client.StatusEnquired:    lipgloss.Color("176"),
	client.StatusTryInFuture: lipgloss.Color("110"),
	client.StatusUnknown:     lipgloss.Color("243"),
}

// statusPill renders a status in its signature color.
func statusPill(s client.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = statusColors[client.StatusUnknown]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(s))
}
