package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color palette for one of the selectable themes.
type Theme struct {
	Name string

	Work       lipgloss.Color
	ShortBreak lipgloss.Color
	LongBreak  lipgloss.Color
	Accent     lipgloss.Color
	Fg         lipgloss.Color
	Muted      lipgloss.Color
	Running    lipgloss.Color
	Paused     lipgloss.Color
	Error      lipgloss.Color
	Highlight  lipgloss.Color
	Subtle     lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Name:       "Default",
		Work:       lipgloss.Color("#FF6B6B"),
		ShortBreak: lipgloss.Color("#2ECC71"),
		LongBreak:  lipgloss.Color("#7AA2F7"),
		Accent:     lipgloss.Color("#FF79C6"),
		Fg:         lipgloss.Color("#C0CAF5"),
		Muted:      lipgloss.Color("#666666"),
		Running:    lipgloss.Color("#2ECC71"),
		Paused:     lipgloss.Color("#F39C12"),
		Error:      lipgloss.Color("#E74C3C"),
		Highlight:  lipgloss.Color("#7AA2F7"),
		Subtle:     lipgloss.Color("#414868"),
	},
	"dracula": {
		Name:       "Dracula",
		Work:       lipgloss.Color("#FF5555"),
		ShortBreak: lipgloss.Color("#50FA7B"),
		LongBreak:  lipgloss.Color("#BD93F9"),
		Accent:     lipgloss.Color("#FF79C6"),
		Fg:         lipgloss.Color("#F8F8F2"),
		Muted:      lipgloss.Color("#6272A4"),
		Running:    lipgloss.Color("#50FA7B"),
		Paused:     lipgloss.Color("#FFB86C"),
		Error:      lipgloss.Color("#FF5555"),
		Highlight:  lipgloss.Color("#8BE9FD"),
		Subtle:     lipgloss.Color("#44475A"),
	},
	"solarized": {
		Name:       "Solarized",
		Work:       lipgloss.Color("#DC322F"),
		ShortBreak: lipgloss.Color("#859900"),
		LongBreak:  lipgloss.Color("#268BD2"),
		Accent:     lipgloss.Color("#D33682"),
		Fg:         lipgloss.Color("#839496"),
		Muted:      lipgloss.Color("#586E75"),
		Running:    lipgloss.Color("#859900"),
		Paused:     lipgloss.Color("#B58900"),
		Error:      lipgloss.Color("#DC322F"),
		Highlight:  lipgloss.Color("#2AA198"),
		Subtle:     lipgloss.Color("#073642"),
	},
	"nord": {
		Name:       "Nord",
		Work:       lipgloss.Color("#BF616A"),
		ShortBreak: lipgloss.Color("#A3BE8C"),
		LongBreak:  lipgloss.Color("#81A1C1"),
		Accent:     lipgloss.Color("#B48EAD"),
		Fg:         lipgloss.Color("#D8DEE9"),
		Muted:      lipgloss.Color("#4C566A"),
		Running:    lipgloss.Color("#A3BE8C"),
		Paused:     lipgloss.Color("#EBCB8B"),
		Error:      lipgloss.Color("#BF616A"),
		Highlight:  lipgloss.Color("#88C0D0"),
		Subtle:     lipgloss.Color("#3B4252"),
	},
}

// themeNames lists the selectable themes in cycle order.
var themeNames = []string{"default", "dracula", "solarized", "nord"}

// lookupTheme returns the named theme, falling back to the default
// palette for unknown names.
func lookupTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}
