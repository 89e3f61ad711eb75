package store

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Reordering is a permutation: no task appears, disappears, or
// duplicates, and the moved task lands at the clamped target index.
func TestPropReorderIsPermutation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := NewMemory()
		if err != nil {
			t.Fatalf("new memory store: %v", err)
		}
		defer s.Close()

		n := rapid.IntRange(1, 8).Draw(t, "tasks")
		ids := make([]int64, n)
		for i := range ids {
			task, err := s.CreateTask(fmt.Sprintf("task %d", i))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			ids[i] = task.ID
		}

		moves := rapid.IntRange(1, 10).Draw(t, "moves")
		for i := 0; i < moves; i++ {
			from := rapid.IntRange(0, n-1).Draw(t, "from")
			target := rapid.IntRange(-2, n+2).Draw(t, "target")
			moved := ids[from]

			if err := s.ReorderTask(moved, target); err != nil {
				t.Fatalf("reorder: %v", err)
			}

			tasks, err := s.ActiveTasks()
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(tasks) != n {
				t.Fatalf("expected %d tasks, got %d", n, len(tasks))
			}

			seen := make(map[int64]bool, n)
			ids = ids[:0]
			for pos, task := range tasks {
				if task.Position == nil || *task.Position != pos {
					t.Fatalf("position gap at index %d: %+v", pos, task)
				}
				if seen[task.ID] {
					t.Fatalf("task %d duplicated", task.ID)
				}
				seen[task.ID] = true
				ids = append(ids, task.ID)
			}

			want := target
			if want < 0 {
				want = 0
			}
			if want > n-1 {
				want = n - 1
			}
			if ids[want] != moved {
				t.Fatalf("task %d should sit at index %d, order %v", moved, want, ids)
			}
		}
	})
}

// Completing and uncompleting in any order keeps the two lists a
// partition of all created tasks and the active positions contiguous.
func TestPropCompleteUncompletePartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, err := NewMemory()
		if err != nil {
			t.Fatalf("new memory store: %v", err)
		}
		defer s.Close()

		n := rapid.IntRange(1, 6).Draw(t, "tasks")
		all := make([]int64, n)
		for i := range all {
			task, err := s.CreateTask(fmt.Sprintf("task %d", i))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			all[i] = task.ID
		}

		ops := rapid.IntRange(1, 12).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			id := all[rapid.IntRange(0, n-1).Draw(t, "pick")]
			if s.TaskActive(id) {
				if err := s.CompleteTask(id); err != nil {
					t.Fatalf("complete: %v", err)
				}
			} else {
				if err := s.UncompleteTask(id); err != nil {
					t.Fatalf("uncomplete: %v", err)
				}
			}

			actives, err := s.ActiveTasks()
			if err != nil {
				t.Fatalf("list active: %v", err)
			}
			completed, err := s.CompletedTasks()
			if err != nil {
				t.Fatalf("list completed: %v", err)
			}
			if len(actives)+len(completed) != n {
				t.Fatalf("lists are not a partition: %d + %d != %d",
					len(actives), len(completed), n)
			}
			for pos, task := range actives {
				if task.Position == nil || *task.Position != pos {
					t.Fatalf("position gap at index %d: %+v", pos, task)
				}
			}
			for _, task := range completed {
				if task.CompletedAt == nil {
					t.Fatalf("completed task %d missing timestamp", task.ID)
				}
			}
		}
	})
}
