// Package stats credits completed work sessions to the aggregate
// counters, the session log, and the bound task.
package stats

import (
	"fmt"

	"github.com/ebincan/gomodoro/internal/session"
	"github.com/ebincan/gomodoro/internal/store"
)

// Recorder listens for phase completions and persists every finished
// work session exactly once. Break completions are ignored. Recording
// failures are reported through onError so the UI can surface them
// without interrupting the timer.
type Recorder struct {
	store   *store.Store
	onError func(error)
}

func NewRecorder(st *store.Store, onError func(error)) *Recorder {
	return &Recorder{store: st, onError: onError}
}

// PhaseCompleted implements session.Subscriber.
func (r *Recorder) PhaseCompleted(t session.Transition) {
	if t.From != session.PhaseWork {
		return
	}
	secs := int64(t.ActualDuration.Seconds())

	if err := r.store.AddSession(secs); err != nil {
		r.report(fmt.Errorf("update stats: %w", err))
	}
	if err := r.store.LogSession(t.TaskID, secs); err != nil {
		r.report(fmt.Errorf("log session: %w", err))
	}
	if t.TaskID != nil {
		// A task archived mid-session still gets the credit; a
		// deleted one is a silent no-op inside the store.
		if err := r.store.RecordSession(*t.TaskID, secs); err != nil {
			r.report(fmt.Errorf("credit task: %w", err))
		}
	}
}

func (r *Recorder) report(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}
