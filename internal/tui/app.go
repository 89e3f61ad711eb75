package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/export"
	"github.com/ebincan/gomodoro/internal/notify"
	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/stats"
	"github.com/ebincan/gomodoro/internal/store"
)

// App is the root Bubble Tea model. It owns the session engine and
// drives it from the one-second tick; views read engine state and
// issue commands back through messages.
type App struct {
	store  *store.Store
	engine *session.Engine
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	notifyOn bool
	soundOn  bool

	timer    timerModel
	tasks    tasksModel
	stats    statsModel
	settings settingsModel

	help   help.Model
	status string

	// Written by the recorder subscriber during engine.Tick/Skip,
	// drained into the status bar on the same Update pass.
	recorderErr *string
}

func NewApp(s *store.Store, eng *session.Engine) App {
	h := help.New()
	h.ShowAll = false

	recErr := new(string)
	eng.Subscribe(stats.NewRecorder(s, func(err error) {
		*recErr = err.Error()
	}))

	applyTheme(lookupTheme(settingString(s, "theme", "default")))

	return App{
		store:       s,
		engine:      eng,
		activeView:  viewTimer,
		notifyOn:    s.SettingBool("desktop_notifications", true),
		soundOn:     s.SettingBool("sound", true),
		timer:       newTimerModel(s, eng),
		tasks:       newTasksModel(s),
		stats:       newStatsModel(s),
		settings:    newSettingsModel(s),
		help:        h,
		recorderErr: recErr,
	}
}

func settingString(s *store.Store, key, fallback string) string {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.tasks.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if tr := a.engine.Tick(time.Second); tr != nil {
			var cmd tea.Cmd
			a, cmd = a.handleTransition(*tr)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case phaseChangedMsg:
		var cmd tea.Cmd
		a, cmd = a.handleTransition(msg.transition)
		return a, cmd

	case startTaskMsg:
		if err := a.engine.Start(&msg.taskID); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return a, nil
		}
		a.timer.boundTitle = msg.title
		a.activeView = viewTimer
		a.status = "Work started: " + msg.title
		return a, nil

	case settingsSavedMsg:
		a.engine.SetConfig(session.Config{
			WorkDuration:       a.store.SettingDuration("work_duration", 25*time.Minute),
			ShortBreakDuration: a.store.SettingDuration("short_break_duration", 5*time.Minute),
			LongBreakDuration:  a.store.SettingDuration("long_break_duration", 15*time.Minute),
			LongBreakInterval:  a.store.SettingInt("long_break_interval", 4),
		})
		a.notifyOn = a.store.SettingBool("desktop_notifications", true)
		a.soundOn = a.store.SettingBool("sound", true)
		applyTheme(lookupTheme(settingString(a.store, "theme", "default")))
		a.status = "Settings saved"
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// handleTransition turns a completed phase into status text, desktop
// notification and sound commands, and a data refresh.
func (a App) handleTransition(tr session.Transition) (App, tea.Cmd) {
	a.status = fmt.Sprintf("%s finished! Time for your %s.", tr.From, tr.To)

	// Dropped dead task reference: clear the bound title.
	if a.engine.BoundTask() == nil {
		a.timer.boundTitle = ""
	}

	var cmds []tea.Cmd
	if a.notifyOn {
		from, to := tr.From, tr.To
		cmds = append(cmds, func() tea.Msg {
			if err := notify.PhaseDone(from, to); err != nil {
				return statusMsg{text: fmt.Sprintf("Notify failed: %v", err), isError: true}
			}
			return nil
		})
	}
	if a.soundOn {
		cmds = append(cmds, func() tea.Msg {
			if err := notify.Beep(); err != nil {
				return statusMsg{text: fmt.Sprintf("Sound failed: %v", err), isError: true}
			}
			return nil
		})
	}

	if *a.recorderErr != "" {
		a.status = "Recording failed: " + *a.recorderErr
		*a.recorderErr = ""
	}

	if cmd := a.refreshCurrentView(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTasks:
		return a.tasks.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewTasks:
		content = a.tasks.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := titleStyle.Render("🍅 gomodoro")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Phase indicator in footer
	phaseInfo := ""
	if phase := a.engine.Phase(); phase != session.PhaseIdle {
		clock := formatClock(a.engine.Remaining())
		if a.engine.Paused() {
			phaseInfo = warningStyle.Render(fmt.Sprintf(" ⏸ %s %s", phase, clock))
		} else {
			phaseInfo = phaseStyle(phase).Render(fmt.Sprintf(" ● %s %s", phase, clock))
		}
	}

	left := footerStyle.Render(helpView)
	right := phaseInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		active, err := a.store.ActiveTasks()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		completed, _ := a.store.CompletedTasks()
		tasks := append(active, completed...)
		totals, _ := a.store.GetStats()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("gomodoro-export-%s.csv", dateStr))
			if err := export.ToCSV(tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("gomodoro-export-%s.json", dateStr))
			if err := export.ToJSON(tasks, totals, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
