package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/store"
)

// timerModel renders the countdown view. The engine itself lives on
// the app; this model only reads it and issues commands.
type timerModel struct {
	store  *store.Store
	engine *session.Engine
	width  int
	height int

	boundTitle string

	bar progress.Model

	// Task picker state
	picking      bool
	pickerTasks  []store.Task
	pickerCursor int
}

func newTimerModel(s *store.Store, eng *session.Engine) timerModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return timerModel{
		store:  s,
		engine: eng,
		bar:    bar,
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
	barWidth := w - 16
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}
	t.bar.Width = barWidth
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.picking {
			return t.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if t.engine.Phase() != session.PhaseIdle {
				return t, nil
			}
			tasks, err := t.store.ActiveTasks()
			if err != nil {
				return t, errStatus(err)
			}
			if len(tasks) == 0 {
				return t.startUnbound()
			}
			t.picking = true
			t.pickerTasks = tasks
			t.pickerCursor = 0
			return t, nil

		case key.Matches(msg, keys.Pause):
			if err := t.engine.Toggle(); err != nil {
				return t, errStatus(err)
			}
			return t, nil

		case key.Matches(msg, keys.Reset):
			if t.engine.Phase() == session.PhaseIdle {
				return t, nil
			}
			t.engine.Reset()
			return t, func() tea.Msg {
				return statusMsg{text: "Phase reset"}
			}

		case key.Matches(msg, keys.Skip):
			tr, err := t.engine.Skip()
			if err != nil {
				return t, errStatus(err)
			}
			transition := *tr
			return t, func() tea.Msg {
				return phaseChangedMsg{transition: transition}
			}
		}
	}
	return t, nil
}

func (t timerModel) updatePicker(msg tea.KeyMsg) (timerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.pickerCursor > 0 {
			t.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		// Index 0 is the "no task" entry.
		if t.pickerCursor < len(t.pickerTasks) {
			t.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		t.picking = false
		if t.pickerCursor == 0 {
			return t.startUnbound()
		}
		task := t.pickerTasks[t.pickerCursor-1]
		return t, func() tea.Msg {
			return startTaskMsg{taskID: task.ID, title: task.Title}
		}
	case key.Matches(msg, keys.Back):
		t.picking = false
	}
	return t, nil
}

func (t timerModel) startUnbound() (timerModel, tea.Cmd) {
	if err := t.engine.Start(nil); err != nil {
		return t, errStatus(err)
	}
	t.boundTitle = ""
	return t, func() tea.Msg {
		return statusMsg{text: "Work started"}
	}
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func (t timerModel) view() string {
	w := t.width - 4
	if t.picking {
		return t.renderPicker(w)
	}

	phase := t.engine.Phase()

	var rows []string
	if phase == session.PhaseIdle {
		rows = append(rows,
			mutedStyle.Render("IDLE"),
			"",
			renderBigText(formatClock(t.engine.Config().WorkDuration), mutedStyle),
			"",
			t.renderCycleDots(),
			"",
			mutedStyle.Render("Press s to start a work session"),
		)
		content := lipgloss.JoinVertical(lipgloss.Center, rows...)
		return panelStyle.Width(w).Render(lipgloss.PlaceHorizontal(w-6, lipgloss.Center, content))
	}

	style := phaseStyle(phase)
	label := strings.ToUpper(phase.String())
	if t.engine.Paused() {
		label += warningStyle.Render("  ⏸ PAUSED")
	}

	total := t.engine.Config().Duration(phase)
	percent := 0.0
	if total > 0 {
		percent = 1 - float64(t.engine.Remaining())/float64(total)
	}

	rows = append(rows,
		style.Render(label),
		"",
		renderBigText(formatClock(t.engine.Remaining()), style),
		"",
		t.bar.ViewAs(percent),
		"",
		t.renderCycleDots(),
	)

	if t.boundTitle != "" && t.engine.BoundTask() != nil {
		rows = append(rows, "", highlightStyle.Render("▶ "+t.boundTitle))
	}

	var controls string
	if phase == session.PhaseWork {
		controls = mutedStyle.Render("space: pause  n: skip  r: reset")
	} else {
		controls = mutedStyle.Render("space: pause  n: skip break  r: reset")
	}
	rows = append(rows, "", controls)

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return activePanelStyle.Width(w).Render(lipgloss.PlaceHorizontal(w-6, lipgloss.Center, content))
}

// renderCycleDots shows progress toward the next long break.
func (t timerModel) renderCycleDots() string {
	interval := t.engine.Config().LongBreakInterval
	cycles := t.engine.Cycles()

	var parts []string
	for i := 0; i < interval; i++ {
		switch {
		case i < cycles:
			parts = append(parts, successStyle.Render("●"))
		case i == cycles && t.engine.Phase() == session.PhaseWork:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", cycles, interval))
	return strings.Join(parts, " ") + counter
}

func (t timerModel) renderPicker(w int) string {
	title := titleStyle.Render("Start work on")

	var rows []string
	rows = append(rows, title, "")

	entries := make([]string, 0, len(t.pickerTasks)+1)
	entries = append(entries, "(no task)")
	for _, task := range t.pickerTasks {
		entries = append(entries, task.Title)
	}

	for i, e := range entries {
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+e))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: start  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
