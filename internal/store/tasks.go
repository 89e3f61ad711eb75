package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateTask appends a new task to the end of the active list.
func (s *Store) CreateTask(title string) (*Task, error) {
	if title == "" {
		return nil, fmt.Errorf("create task: empty title")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, position, created_at)
		 VALUES (?, (SELECT COUNT(*) FROM tasks WHERE position IS NOT NULL), ?)`,
		title, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

// GetTask fetches a task from either list.
func (s *Store) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, title, position, completed_pomodoros, focused_seconds, created_at, completed_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ActiveTasks returns the active list in priority order.
func (s *Store) ActiveTasks() ([]Task, error) {
	return s.listTasks(`WHERE position IS NOT NULL ORDER BY position`)
}

// CompletedTasks returns the archive, most recently completed first.
func (s *Store) CompletedTasks() ([]Task, error) {
	return s.listTasks(`WHERE completed_at IS NOT NULL ORDER BY completed_at DESC, id DESC`)
}

func (s *Store) listTasks(clause string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, position, completed_pomodoros, focused_seconds, created_at, completed_at
		 FROM tasks ` + clause,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// TaskActive reports whether id references a task in the active list.
// This is the weak-reference lookup used by the session engine.
func (s *Store) TaskActive(id int64) bool {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM tasks WHERE id = ? AND position IS NOT NULL`, id,
	).Scan(&n)
	return err == nil && n > 0
}

// ReorderTask moves a task to newIndex within the active list. The move is
// stable: the task is pulled out and reinserted, shifting the others.
// Out-of-range indices clamp to the valid range.
func (s *Store) ReorderTask(id int64, newIndex int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder task: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id FROM tasks WHERE position IS NOT NULL ORDER BY position`)
	if err != nil {
		return fmt.Errorf("reorder task: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var tid int64
		if err := rows.Scan(&tid); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, tid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	cur := -1
	for i, tid := range ids {
		if tid == id {
			cur = i
			break
		}
	}
	if cur == -1 {
		return fmt.Errorf("reorder task %d: %w", id, ErrNotFound)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(ids)-1 {
		newIndex = len(ids) - 1
	}
	if newIndex == cur {
		return tx.Commit()
	}

	ids = append(ids[:cur], ids[cur+1:]...)
	ids = append(ids[:newIndex], append([]int64{id}, ids[newIndex:]...)...)

	for i, tid := range ids {
		if _, err := tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?`, i, tid); err != nil {
			return fmt.Errorf("reorder task: %w", err)
		}
	}
	return tx.Commit()
}

// CompleteTask moves a task from the active list to the archive, stamping
// completed_at. Only active tasks can be completed.
func (s *Store) CompleteTask(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	defer tx.Rollback()

	var pos sql.NullInt64
	err = tx.QueryRow(`SELECT position FROM tasks WHERE id = ?`, id).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !pos.Valid) {
		return fmt.Errorf("complete task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`UPDATE tasks SET position = NULL, completed_at = ? WHERE id = ?`, now, id,
	); err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	// Close the gap left in the active order.
	if _, err := tx.Exec(
		`UPDATE tasks SET position = position - 1 WHERE position > ?`, pos.Int64,
	); err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	return tx.Commit()
}

// UncompleteTask moves a task back from the archive to the end of the
// active list and clears completed_at.
func (s *Store) UncompleteTask(id int64) error {
	res, err := s.db.Exec(
		`UPDATE tasks
		 SET position = (SELECT COUNT(*) FROM tasks WHERE position IS NOT NULL),
		     completed_at = NULL
		 WHERE id = ? AND completed_at IS NOT NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("uncomplete task %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("uncomplete task %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task from whichever list holds it. Irreversible;
// logged sessions keep their row with task_id nulled by the foreign key.
func (s *Store) DeleteTask(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	defer tx.Rollback()

	var pos sql.NullInt64
	err = tx.QueryRow(`SELECT position FROM tasks WHERE id = ?`, id).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if pos.Valid {
		if _, err := tx.Exec(
			`UPDATE tasks SET position = position - 1 WHERE position > ?`, pos.Int64,
		); err != nil {
			return fmt.Errorf("delete task %d: %w", id, err)
		}
	}
	return tx.Commit()
}

// RecordSession credits one completed pomodoro and its focused time to a
// task. The task is matched in either list: a task the user archived while
// its timer kept running is still credited. A deleted task is a silent
// no-op, reflecting the weak-reference policy.
func (s *Store) RecordSession(id int64, focusedSeconds int64) error {
	_, err := s.db.Exec(
		`UPDATE tasks
		 SET completed_pomodoros = completed_pomodoros + 1,
		     focused_seconds = focused_seconds + ?
		 WHERE id = ?`,
		focusedSeconds, id,
	)
	if err != nil {
		return fmt.Errorf("record session for task %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var pos sql.NullInt64
	var createdAt string
	var completedAt sql.NullString
	if err := row.Scan(
		&t.ID, &t.Title, &pos, &t.CompletedPomodoros, &t.FocusedSeconds, &createdAt, &completedAt,
	); err != nil {
		return nil, err
	}
	if pos.Valid {
		p := int(pos.Int64)
		t.Position = &p
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &ts
	}
	return t, nil
}
