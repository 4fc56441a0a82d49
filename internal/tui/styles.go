package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8A2BE2") // step purple
	pending = lipgloss.Color("#D8D8D8")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 2)

	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(dim)
	hintStyle    = lipgloss.NewStyle().Foreground(danger)
	helpStyle    = lipgloss.NewStyle().Foreground(dim).MarginTop(1)
	statusStyle  = lipgloss.NewStyle().Foreground(success)

	doneStepStyle    = lipgloss.NewStyle().Foreground(accent)
	pendingStepStyle = lipgloss.NewStyle().Foreground(pending)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(pending).
			PaddingLeft(2).
			MarginLeft(4)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 4)
)
