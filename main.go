package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/store"
	"github.com/ebincan/gomodoro/internal/tui"
)

var version = "dev"

var (
	flagDB       string
	flagWork     int
	flagShort    int
	flagLong     int
	flagInterval int
	flagTheme    string
)

func main() {
	root := &cobra.Command{
		Use:   "gomodoro",
		Short: "A pomodoro timer for the terminal",
		RunE:  run,
	}

	root.Flags().StringVar(&flagDB, "db", "", "database path (default ~/.config/gomodoro/gomodoro.db)")
	root.Flags().IntVar(&flagWork, "work", 0, "work duration in minutes")
	root.Flags().IntVar(&flagShort, "short-break", 0, "short break duration in minutes")
	root.Flags().IntVar(&flagLong, "long-break", 0, "long break duration in minutes")
	root.Flags().IntVar(&flagInterval, "interval", 0, "work sessions before a long break")
	root.Flags().StringVar(&flagTheme, "theme", "", "color theme (default, dracula, solarized, nord)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gomodoro " + version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dbPath := flagDB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	// Flags override the stored settings for durations and theme.
	if err := applyFlagOverrides(cmd, s); err != nil {
		return err
	}

	cfg := session.Config{
		WorkDuration:       s.SettingDuration("work_duration", 25*time.Minute),
		ShortBreakDuration: s.SettingDuration("short_break_duration", 5*time.Minute),
		LongBreakDuration:  s.SettingDuration("long_break_duration", 15*time.Minute),
		LongBreakInterval:  s.SettingInt("long_break_interval", 4),
	}
	eng := session.NewEngine(cfg, s)

	app := tui.NewApp(s, eng)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, s *store.Store) error {
	durations := []struct {
		flag    string
		key     string
		minutes int
	}{
		{"work", "work_duration", flagWork},
		{"short-break", "short_break_duration", flagShort},
		{"long-break", "long_break_duration", flagLong},
	}
	for _, d := range durations {
		if !cmd.Flags().Changed(d.flag) {
			continue
		}
		if d.minutes <= 0 {
			return fmt.Errorf("--%s must be positive", d.flag)
		}
		if err := s.SetSetting(d.key, strconv.Itoa(d.minutes*60)); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("interval") {
		if flagInterval <= 0 {
			return fmt.Errorf("--interval must be positive")
		}
		if err := s.SetSetting("long_break_interval", strconv.Itoa(flagInterval)); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("theme") {
		if err := s.SetSetting("theme", flagTheme); err != nil {
			return err
		}
	}
	return nil
}
