package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ebincan/gomodoro/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Totals     jsonTotals `json:"totals"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTotals struct {
	Sessions       int64  `json:"sessions"`
	FocusedSeconds int64  `json:"focused_seconds"`
	Focused        string `json:"focused"`
}

type jsonTask struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Pomodoros  int    `json:"pomodoros"`
	FocusedSec int64  `json:"focused_seconds"`
	Focused    string `json:"focused"`
	Created    string `json:"created"`
	Completed  string `json:"completed,omitempty"`
}

func ToJSON(tasks []store.Task, stats *store.Stats, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}
	if stats != nil {
		export.Totals = jsonTotals{
			Sessions:       stats.TotalSessions,
			FocusedSeconds: stats.TotalFocusedSeconds,
			Focused:        formatDuration(stats.TotalFocusedSeconds),
		}
	}

	for _, t := range tasks {
		status := "active"
		completedStr := ""
		if t.CompletedAt != nil {
			status = "completed"
			completedStr = t.CompletedAt.Local().Format(time.RFC3339)
		}

		export.Tasks = append(export.Tasks, jsonTask{
			ID:         t.ID,
			Title:      t.Title,
			Status:     status,
			Pomodoros:  t.CompletedPomodoros,
			FocusedSec: t.FocusedSeconds,
			Focused:    formatDuration(t.FocusedSeconds),
			Created:    t.CreatedAt.Local().Format(time.RFC3339),
			Completed:  completedStr,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
