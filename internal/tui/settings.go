package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	workDuration      *string
	shortBreak        *string
	longBreak         *string
	longBreakInterval *string
	theme             *string
	notifications     *bool
	sound             *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	wd, sb, lb, lbi, th := "", "", "", "", ""
	notif, snd := true, true
	return settingsModel{
		store:             s,
		workDuration:      &wd,
		shortBreak:        &sb,
		longBreak:         &lb,
		longBreakInterval: &lbi,
		theme:             &th,
		notifications:     &notif,
		sound:             &snd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.workDuration = secsToMin(s.getVal("work_duration", "1500"))
	*s.shortBreak = secsToMin(s.getVal("short_break_duration", "300"))
	*s.longBreak = secsToMin(s.getVal("long_break_duration", "900"))
	*s.longBreakInterval = s.getVal("long_break_interval", "4")
	*s.theme = s.getVal("theme", "default")
	*s.notifications = s.getVal("desktop_notifications", "1") == "1"
	*s.sound = s.getVal("sound", "1") == "1"

	themeOptions := make([]huh.Option[string], len(themeNames))
	for i, name := range themeNames {
		themeOptions[i] = huh.NewOption(lookupTheme(name).Name, name)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work (min)").Value(s.workDuration).Validate(positiveInt),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(positiveInt),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(positiveInt),
			huh.NewInput().Title("Work sessions before long break").Value(s.longBreakInterval).Validate(positiveInt),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").Options(themeOptions...).Value(s.theme),
			huh.NewConfirm().Title("Desktop notifications").Value(s.notifications),
			huh.NewConfirm().Title("Sound").Value(s.sound),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return settingsSavedMsg{}
		})
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("work_duration", minToSecs(*s.workDuration))
	s.store.SetSetting("short_break_duration", minToSecs(*s.shortBreak))
	s.store.SetSetting("long_break_duration", minToSecs(*s.longBreak))
	s.store.SetSetting("long_break_interval", *s.longBreakInterval)
	s.store.SetSetting("theme", *s.theme)
	s.store.SetSetting("desktop_notifications", boolSetting(*s.notifications))
	s.store.SetSetting("sound", boolSetting(*s.sound))
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(26).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "", hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "work_duration", "short_break_duration", "long_break_duration":
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", secs/60)
		}
	case "desktop_notifications", "sound":
		if v == "1" {
			return "on"
		}
		return "off"
	case "theme":
		return lookupTheme(v).Name
	}
	return v
}

func secsToMin(s string) string {
	if secs, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(secs / 60)
	}
	return s
}

func minToSecs(s string) string {
	if mins, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(mins * 60)
	}
	return s
}

func boolSetting(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
