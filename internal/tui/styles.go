package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/session"
)

// Styles are package-level so views can share them; applyTheme swaps
// the palette in place when the theme setting changes.
var (
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style

	panelStyle       lipgloss.Style
	activePanelStyle lipgloss.Style

	workStyle       lipgloss.Style
	shortBreakStyle lipgloss.Style
	longBreakStyle  lipgloss.Style

	titleStyle     lipgloss.Style
	accentStyle    lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	mutedStyle     lipgloss.Style
	highlightStyle lipgloss.Style

	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	doneItemStyle     lipgloss.Style
)

func init() {
	applyTheme(lookupTheme("default"))
}

func applyTheme(t Theme) {
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Accent).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2)

	workStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Work)
	shortBreakStyle = lipgloss.NewStyle().Bold(true).Foreground(t.ShortBreak)
	longBreakStyle = lipgloss.NewStyle().Bold(true).Foreground(t.LongBreak)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Fg)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	successStyle = lipgloss.NewStyle().Foreground(t.Running)
	warningStyle = lipgloss.NewStyle().Foreground(t.Paused)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	mutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	highlightStyle = lipgloss.NewStyle().Foreground(t.Highlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(t.Fg)
	doneItemStyle = lipgloss.NewStyle().Foreground(t.Muted).Strikethrough(true)
}

// phaseStyle returns the style used for a phase label and its big
// countdown digits.
func phaseStyle(p session.Phase) lipgloss.Style {
	switch p {
	case session.PhaseShortBreak:
		return shortBreakStyle
	case session.PhaseLongBreak:
		return longBreakStyle
	default:
		return workStyle
	}
}
