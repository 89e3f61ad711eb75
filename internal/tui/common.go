package tui

import (
	"fmt"
	"time"

	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// phaseChangedMsg carries a transition produced outside the tick path
// (a manual skip) back into the central handler.
type phaseChangedMsg struct {
	transition session.Transition
}

// startTaskMsg asks the app to bind the timer to a task and start it.
type startTaskMsg struct {
	taskID int64
	title  string
}

type tasksDataMsg struct {
	active    []store.Task
	completed []store.Task
}

type statsDataMsg struct {
	totals *store.Stats
	days   []store.DailyFocus
	top    []store.Task
}

type settingsDataMsg struct {
	settings []store.Setting
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}
