package session

import (
	"testing"
	"time"
)

// fakeResolver marks a fixed set of task ids as active.
type fakeResolver struct {
	active map[int64]bool
}

func (r *fakeResolver) TaskActive(id int64) bool { return r.active[id] }

// recordingSub collects every transition it receives.
type recordingSub struct {
	transitions []Transition
}

func (r *recordingSub) PhaseCompleted(t Transition) {
	r.transitions = append(r.transitions, t)
}

func newTestEngine() (*Engine, *fakeResolver, *recordingSub) {
	res := &fakeResolver{active: map[int64]bool{}}
	e := NewEngine(DefaultConfig(), res)
	sub := &recordingSub{}
	e.Subscribe(sub)
	return e, res, sub
}

func TestEngineInitialState(t *testing.T) {
	e, _, _ := newTestEngine()
	if e.Phase() != PhaseIdle {
		t.Fatalf("expected Idle, got %v", e.Phase())
	}
	if e.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %v", e.Remaining())
	}
	if e.BoundTask() != nil {
		t.Fatal("new engine should have no bound task")
	}
}

func TestStartUnbound(t *testing.T) {
	e, _, _ := newTestEngine()
	if err := e.Start(nil); err != nil {
		t.Fatal(err)
	}
	if e.Phase() != PhaseWork {
		t.Fatalf("expected Work, got %v", e.Phase())
	}
	if e.Remaining() != 25*time.Minute {
		t.Fatalf("expected 25m remaining, got %v", e.Remaining())
	}
	if e.BoundTask() != nil {
		t.Fatal("should be unbound")
	}
}

func TestStartBound(t *testing.T) {
	e, res, _ := newTestEngine()
	res.active[7] = true
	id := int64(7)
	if err := e.Start(&id); err != nil {
		t.Fatal(err)
	}
	bound := e.BoundTask()
	if bound == nil || *bound != 7 {
		t.Fatalf("expected bound task 7, got %v", bound)
	}
}

func TestStartDeadReferenceStartsUnbound(t *testing.T) {
	e, _, _ := newTestEngine()
	id := int64(42)
	err := e.Start(&id)
	if err != ErrInvalidTaskReference {
		t.Fatalf("expected ErrInvalidTaskReference, got %v", err)
	}
	if e.Phase() != PhaseWork {
		t.Fatal("session should still start")
	}
	if e.BoundTask() != nil {
		t.Fatal("session should be unbound")
	}
}

func TestStartWhileRunningRejected(t *testing.T) {
	e, _, sub := newTestEngine()
	e.Start(nil)
	remaining := e.Remaining()

	if err := e.Start(nil); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if e.Remaining() != remaining || e.Phase() != PhaseWork {
		t.Fatal("rejected command must leave state unchanged")
	}
	if len(sub.transitions) != 0 {
		t.Fatal("rejected command must not emit events")
	}
}

func TestTickCountsDown(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start(nil)

	if tr := e.Tick(time.Minute); tr != nil {
		t.Fatal("no transition expected")
	}
	if e.Remaining() != 24*time.Minute {
		t.Fatalf("expected 24m, got %v", e.Remaining())
	}
}

func TestTickWhileIdleIsNoop(t *testing.T) {
	e, _, sub := newTestEngine()
	if tr := e.Tick(time.Hour); tr != nil {
		t.Fatal("idle tick must not transition")
	}
	if len(sub.transitions) != 0 {
		t.Fatal("idle tick must not emit events")
	}
}

func TestTickCompletesWorkPhase(t *testing.T) {
	e, _, sub := newTestEngine()
	e.Start(nil)

	tr := e.Tick(25 * time.Minute)
	if tr == nil {
		t.Fatal("expected a transition")
	}
	if tr.From != PhaseWork || tr.To != PhaseShortBreak {
		t.Fatalf("expected Work->ShortBreak, got %v->%v", tr.From, tr.To)
	}
	if tr.ActualDuration != 25*time.Minute {
		t.Fatalf("expected 25m actual, got %v", tr.ActualDuration)
	}
	if e.Phase() != PhaseShortBreak || e.Remaining() != 5*time.Minute {
		t.Fatalf("engine should idle at full short break, got %v %v", e.Phase(), e.Remaining())
	}
	if len(sub.transitions) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sub.transitions))
	}
}

func TestTickOvershootDiscarded(t *testing.T) {
	e, _, sub := newTestEngine()
	e.Start(nil)

	// One huge tick crosses only one threshold; the excess is discarded.
	tr := e.Tick(3 * time.Hour)
	if tr == nil || tr.From != PhaseWork {
		t.Fatal("expected a single work completion")
	}
	if len(sub.transitions) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(sub.transitions))
	}
	if e.Remaining() != 5*time.Minute {
		t.Fatalf("next phase should start at full duration, got %v", e.Remaining())
	}
}

func TestNoDoubleFireAcrossGranularities(t *testing.T) {
	for _, step := range []time.Duration{time.Second, 250 * time.Millisecond, 7 * time.Second} {
		e, _, sub := newTestEngine()
		e.SetConfig(Config{
			WorkDuration:       10 * time.Second,
			ShortBreakDuration: 5 * time.Second,
			LongBreakDuration:  8 * time.Second,
			LongBreakInterval:  4,
		})
		e.Start(nil)

		for e.Phase() == PhaseWork {
			e.Tick(step)
		}
		if len(sub.transitions) != 1 {
			t.Fatalf("step %v: expected 1 event, got %d", step, len(sub.transitions))
		}
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start(nil)
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}
	e.Tick(time.Hour)
	if e.Remaining() != 25*time.Minute {
		t.Fatal("paused engine must not count down")
	}
	if err := e.Resume(); err != nil {
		t.Fatal(err)
	}
	e.Tick(time.Minute)
	if e.Remaining() != 24*time.Minute {
		t.Fatal("resumed engine should count down")
	}
}

func TestPauseIdempotent(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start(nil)
	e.Pause()
	if err := e.Pause(); err != nil {
		t.Fatalf("second pause should be a no-op, got %v", err)
	}
	e.Resume()
	if err := e.Resume(); err != nil {
		t.Fatalf("second resume should be a no-op, got %v", err)
	}
}

func TestPauseWhileIdleRejected(t *testing.T) {
	e, _, _ := newTestEngine()
	if err := e.Pause(); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := e.Resume(); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestResetEmitsNothing(t *testing.T) {
	e, res, sub := newTestEngine()
	res.active[3] = true
	id := int64(3)
	e.Start(&id)
	e.Tick(10 * time.Minute)

	e.Reset()
	if e.Phase() != PhaseIdle || e.Remaining() != 0 {
		t.Fatal("reset should return to Idle with zero remaining")
	}
	if e.BoundTask() != nil {
		t.Fatal("reset should clear the binding")
	}
	if len(sub.transitions) != 0 {
		t.Fatal("an aborted session is not counted")
	}
}

func TestSkipMatchesNaturalCompletion(t *testing.T) {
	natural, res1, sub1 := newTestEngine()
	res1.active[5] = true
	id := int64(5)
	natural.Start(&id)
	natural.Tick(25 * time.Minute)

	skipped, res2, sub2 := newTestEngine()
	res2.active[5] = true
	skipped.Start(&id)
	if _, err := skipped.Skip(); err != nil {
		t.Fatal(err)
	}

	if len(sub1.transitions) != 1 || len(sub2.transitions) != 1 {
		t.Fatal("both paths should emit exactly one event")
	}
	a, b := sub1.transitions[0], sub2.transitions[0]
	if a.From != b.From || a.To != b.To || a.ActualDuration != b.ActualDuration {
		t.Fatalf("skip and natural completion diverged: %+v vs %+v", a, b)
	}
	if *a.TaskID != *b.TaskID {
		t.Fatal("bound task should match")
	}
}

func TestSkipWhileIdleRejected(t *testing.T) {
	e, _, _ := newTestEngine()
	if _, err := e.Skip(); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestLongBreakCadence(t *testing.T) {
	e, _, sub := newTestEngine()
	e.Start(nil)

	// Completions 1-3 -> short break, 4 -> long break.
	for i := 1; i <= 4; i++ {
		tr := e.Tick(e.Remaining()) // finish work
		want := PhaseShortBreak
		if i == 4 {
			want = PhaseLongBreak
		}
		if tr.To != want {
			t.Fatalf("completion %d: expected %v, got %v", i, want, tr.To)
		}
		if i == 4 && e.Cycles() != 0 {
			t.Fatalf("cycle counter should reset after long break, got %d", e.Cycles())
		}
		e.Tick(e.Remaining()) // finish break, back to work
	}
	// 8 events total: 4 work + 4 break completions.
	if len(sub.transitions) != 8 {
		t.Fatalf("expected 8 events, got %d", len(sub.transitions))
	}
}

func TestBreakCompletionAutoCyclesToWork(t *testing.T) {
	e, res, _ := newTestEngine()
	res.active[9] = true
	id := int64(9)
	e.Start(&id)

	e.Tick(25 * time.Minute) // work -> short break
	tr := e.Tick(5 * time.Minute)
	if tr == nil || tr.From != PhaseShortBreak || tr.To != PhaseWork {
		t.Fatalf("expected ShortBreak->Work, got %+v", tr)
	}
	if e.Phase() != PhaseWork || e.Remaining() != 25*time.Minute {
		t.Fatal("auto-cycle should restart a full work phase")
	}
	if e.Paused() {
		t.Fatal("auto-cycled work phase should be running")
	}
	bound := e.BoundTask()
	if bound == nil || *bound != 9 {
		t.Fatal("bound task should carry forward across the break")
	}
}

func TestCarryForwardDropsDeadTask(t *testing.T) {
	e, res, _ := newTestEngine()
	res.active[9] = true
	id := int64(9)
	e.Start(&id)
	e.Tick(25 * time.Minute)

	// Task deleted mid-break.
	delete(res.active, 9)
	e.Tick(5 * time.Minute)

	if e.Phase() != PhaseWork {
		t.Fatal("should still auto-cycle to work")
	}
	if e.BoundTask() != nil {
		t.Fatal("dead reference must not carry forward")
	}
}

func TestScenarioWorkShortBreakWork(t *testing.T) {
	// spec scenario: 25/5/15 interval 4, bound to one task.
	e, res, sub := newTestEngine()
	res.active[1] = true
	id := int64(1)
	if err := e.Start(&id); err != nil {
		t.Fatal(err)
	}

	tr := e.Tick(25 * time.Minute)
	if tr.From != PhaseWork || tr.To != PhaseShortBreak {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if tr.ActualDuration != 25*time.Minute || *tr.TaskID != 1 {
		t.Fatalf("unexpected attribution %+v", tr)
	}
	if e.Remaining() != 5*time.Minute {
		t.Fatalf("expected 5m break, got %v", e.Remaining())
	}

	tr = e.Tick(5 * time.Minute)
	if tr.From != PhaseShortBreak || tr.To != PhaseWork {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if e.Remaining() != 25*time.Minute || e.Cycles() != 1 {
		t.Fatalf("expected fresh work phase with 1 cycle, got %v cycles=%d", e.Remaining(), e.Cycles())
	}
	bound := e.BoundTask()
	if bound == nil || *bound != 1 {
		t.Fatal("task should carry forward")
	}
	if len(sub.transitions) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sub.transitions))
	}
}

func TestSubscriberOrder(t *testing.T) {
	e, _, _ := newTestEngine()
	var order []string
	e.Subscribe(subscriberFunc(func(Transition) { order = append(order, "b") }))
	e.Subscribe(subscriberFunc(func(Transition) { order = append(order, "c") }))
	e.Start(nil)
	e.Skip()

	if len(order) != 2 || order[0] != "b" || order[1] != "c" {
		t.Fatalf("subscribers out of order: %v", order)
	}
}

type subscriberFunc func(Transition)

func (f subscriberFunc) PhaseCompleted(t Transition) { f(t) }

func TestMinimumInterval(t *testing.T) {
	e := NewEngine(Config{
		WorkDuration:       time.Minute,
		ShortBreakDuration: time.Minute,
		LongBreakDuration:  time.Minute,
		LongBreakInterval:  0, // clamped to 1
	}, nil)
	e.Start(nil)
	tr := e.Tick(time.Minute)
	if tr.To != PhaseLongBreak {
		t.Fatalf("interval 1 means every break is long, got %v", tr.To)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseIdle, "Idle"},
		{PhaseWork, "Work"},
		{PhaseShortBreak, "Short Break"},
		{PhaseLongBreak, "Long Break"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
