package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/store"
)

// statsModel shows lifetime totals, a focus-per-day chart for the
// visible week, and the most worked-on tasks.
type statsModel struct {
	store  *store.Store
	width  int
	height int

	totals *store.Stats
	days   []store.DailyFocus
	top    []store.Task
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		totals, _ := m.store.GetStats()
		from, to := m.dateRange()
		days, _ := m.store.GetDailyFocus(from, to)

		active, _ := m.store.ActiveTasks()
		completed, _ := m.store.CompletedTasks()
		top := append(active, completed...)
		sort.Slice(top, func(i, j int) bool {
			return top[i].FocusedSeconds > top[j].FocusedSeconds
		})
		if len(top) > 5 {
			top = top[:5]
		}

		return statsDataMsg{totals: totals, days: days, top: top}
	}
}

func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*m.offset)
	return end.AddDate(0, 0, -7), end
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.totals = msg.totals
		m.days = msg.days
		m.top = msg.top
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		hours := 0.0
		for _, day := range m.days {
			if day.Date == dateStr {
				hours = float64(day.TotalSeconds) / 3600.0
			}
		}

		style := successStyle
		if hours == 0 {
			style = mutedStyle
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "focus", Value: hours, Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ", dateLabel,
	)

	totals := m.renderTotals()
	chartView := m.chart.View()
	topView := m.renderTopTasks(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", totals, "", chartView, "", topView, "", nav,
		),
	)
}

func (m statsModel) renderTotals() string {
	if m.totals == nil {
		return mutedStyle.Render("  No sessions recorded yet")
	}
	sessions := highlightStyle.Render(fmt.Sprintf("%d", m.totals.TotalSessions))
	focused := highlightStyle.Render(formatSeconds(m.totals.TotalFocusedSeconds))
	return fmt.Sprintf("  Sessions: %s   Focused: %s", sessions, focused)
}

func (m statsModel) renderTopTasks(w int) string {
	if len(m.top) == 0 {
		return mutedStyle.Render("  No tasks yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %10s %10s", "Task", "Pomodoros", "Focused")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 50))))

	for _, task := range m.top {
		name := task.Title
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		rows = append(rows, fmt.Sprintf("  %-28s %10d %10s",
			name, task.CompletedPomodoros, formatHours(task.FocusedSeconds)))
	}

	return strings.Join(rows, "\n")
}
