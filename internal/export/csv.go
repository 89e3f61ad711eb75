package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/ebincan/gomodoro/internal/store"
)

func ToCSV(tasks []store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Status", "Pomodoros", "Focused (s)", "Focused", "Created", "Completed"}); err != nil {
		return err
	}

	for _, t := range tasks {
		status := "active"
		completedStr := ""
		if t.CompletedAt != nil {
			status = "completed"
			completedStr = t.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Title,
			status,
			fmt.Sprintf("%d", t.CompletedPomodoros),
			fmt.Sprintf("%d", t.FocusedSeconds),
			formatDuration(t.FocusedSeconds),
			t.CreatedAt.Local().Format(time.RFC3339),
			completedStr,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
