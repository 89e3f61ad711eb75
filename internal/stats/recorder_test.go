package stats

import (
	"testing"
	"time"

	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/store"
)

func newTestRecorder(t *testing.T) (*Recorder, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewRecorder(s, func(err error) { t.Errorf("recorder error: %v", err) }), s
}

func workDone(taskID *int64, d time.Duration) session.Transition {
	return session.Transition{
		From:           session.PhaseWork,
		To:             session.PhaseShortBreak,
		TaskID:         taskID,
		ActualDuration: d,
	}
}

func TestWorkCompletionCredited(t *testing.T) {
	r, s := newTestRecorder(t)
	task, _ := s.CreateTask("deep work")

	r.PhaseCompleted(workDone(&task.ID, 25*time.Minute))

	st, _ := s.GetStats()
	if st.TotalSessions != 1 || st.TotalFocusedSeconds != 1500 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	got, _ := s.GetTask(task.ID)
	if got.CompletedPomodoros != 1 || got.FocusedSeconds != 1500 {
		t.Fatalf("task not credited: %+v", got)
	}
}

func TestUnboundWorkCompletionCredited(t *testing.T) {
	r, s := newTestRecorder(t)

	r.PhaseCompleted(workDone(nil, 25*time.Minute))

	st, _ := s.GetStats()
	if st.TotalSessions != 1 || st.TotalFocusedSeconds != 1500 {
		t.Fatalf("unbound session should still count globally: %+v", st)
	}
}

func TestBreakCompletionIgnored(t *testing.T) {
	r, s := newTestRecorder(t)

	r.PhaseCompleted(session.Transition{
		From:           session.PhaseShortBreak,
		To:             session.PhaseWork,
		ActualDuration: 5 * time.Minute,
	})
	r.PhaseCompleted(session.Transition{
		From:           session.PhaseLongBreak,
		To:             session.PhaseWork,
		ActualDuration: 15 * time.Minute,
	})

	st, _ := s.GetStats()
	if st.TotalSessions != 0 || st.TotalFocusedSeconds != 0 {
		t.Fatalf("breaks must not be counted: %+v", st)
	}
}

func TestArchivedTaskStillCredited(t *testing.T) {
	r, s := newTestRecorder(t)
	task, _ := s.CreateTask("deep work")
	s.CompleteTask(task.ID)

	r.PhaseCompleted(workDone(&task.ID, 25*time.Minute))

	got, _ := s.GetTask(task.ID)
	if got.CompletedPomodoros != 1 || got.FocusedSeconds != 1500 {
		t.Fatal("task archived mid-session should keep the credit")
	}
}

func TestDeletedTaskDoesNotFail(t *testing.T) {
	r, s := newTestRecorder(t)
	task, _ := s.CreateTask("deep work")
	id := task.ID
	s.DeleteTask(id)

	r.PhaseCompleted(workDone(&id, 25*time.Minute))

	// The global counters still move; the per-task credit is dropped.
	st, _ := s.GetStats()
	if st.TotalSessions != 1 {
		t.Fatalf("global stats should still count: %+v", st)
	}
}

func TestSkipAndNaturalExpiryIdentical(t *testing.T) {
	// Both paths deliver the same Transition, so the recorder cannot
	// tell them apart. Verify a skipped session carrying the full
	// configured duration is credited like a natural one.
	r, s := newTestRecorder(t)
	task, _ := s.CreateTask("deep work")

	cfg := session.DefaultConfig()
	eng := session.NewEngine(cfg, s)
	eng.Subscribe(r)

	if err := eng.Start(&task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Skip(); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetTask(task.ID)
	if got.CompletedPomodoros != 1 || got.FocusedSeconds != int64(cfg.WorkDuration.Seconds()) {
		t.Fatalf("skipped session should credit the full duration: %+v", got)
	}
}

func TestRecorderErrorsSurfaced(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close() // force every store call to fail

	var reported []error
	r := NewRecorder(s, func(err error) { reported = append(reported, err) })

	r.PhaseCompleted(workDone(nil, 25*time.Minute))
	if len(reported) == 0 {
		t.Fatal("store failures should reach the error callback")
	}
}
