package store

import "time"

// Task is either active (has a Position, no CompletedAt) or completed
// (no Position, has CompletedAt); never both.
type Task struct {
	ID                 int64
	Title              string
	Position           *int
	CompletedPomodoros int
	FocusedSeconds     int64
	CreatedAt          time.Time
	CompletedAt        *time.Time
}

// Completed reports whether the task lives in the completed list.
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}

// Session is one completed work phase, logged for the daily chart.
// TaskID goes NULL when the task is deleted.
type Session struct {
	ID          int64
	TaskID      *int64
	Duration    int64 // seconds
	CompletedAt time.Time
}

// Stats is the process-lifetime aggregate. Both counters only ever grow.
type Stats struct {
	TotalSessions       int64
	TotalFocusedSeconds int64
}

type Setting struct {
	Key   string
	Value string
}

// DailyFocus is the focused time aggregated per calendar day.
type DailyFocus struct {
	Date         string
	TotalSeconds int64
	SessionCount int
}
