package store

import (
	"fmt"
	"time"
)

// GetStats returns the lifetime aggregate.
func (s *Store) GetStats() (*Stats, error) {
	st := &Stats{}
	err := s.db.QueryRow(
		`SELECT total_sessions, total_focused_seconds FROM stats WHERE id = 1`,
	).Scan(&st.TotalSessions, &st.TotalFocusedSeconds)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// AddSession bumps both lifetime counters by one completed work phase.
func (s *Store) AddSession(focusedSeconds int64) error {
	_, err := s.db.Exec(
		`UPDATE stats
		 SET total_sessions = total_sessions + 1,
		     total_focused_seconds = total_focused_seconds + ?
		 WHERE id = 1`,
		focusedSeconds,
	)
	if err != nil {
		return fmt.Errorf("add session: %w", err)
	}
	return nil
}

// LogSession appends one completed work phase to the session log.
func (s *Store) LogSession(taskID *int64, durationSeconds int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO sessions (task_id, duration, completed_at) VALUES (?, ?, ?)`,
		taskID, durationSeconds, now,
	)
	if err != nil {
		return fmt.Errorf("log session: %w", err)
	}
	return nil
}

// GetDailyFocus aggregates logged focus time per calendar day in [from, to).
func (s *Store) GetDailyFocus(from, to time.Time) ([]DailyFocus, error) {
	rows, err := s.db.Query(
		`SELECT substr(completed_at, 1, 10) AS day, SUM(duration), COUNT(*)
		 FROM sessions
		 WHERE completed_at >= ? AND completed_at < ?
		 GROUP BY day
		 ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily focus: %w", err)
	}
	defer rows.Close()

	var out []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.TotalSeconds, &d.SessionCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
