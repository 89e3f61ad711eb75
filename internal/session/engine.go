// Package session implements the pomodoro phase state machine. It owns the
// current phase, the countdown, the work-cycle counter, and the task bound to
// the running work phase. It performs no I/O: persistence, statistics, and
// alerts hang off the Transition values it hands to its subscribers.
package session

import (
	"errors"
	"time"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWork
	PhaseShortBreak
	PhaseLongBreak
)

var phaseNames = map[Phase]string{
	PhaseIdle:       "Idle",
	PhaseWork:       "Work",
	PhaseShortBreak: "Short Break",
	PhaseLongBreak:  "Long Break",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// IsBreak reports whether p is one of the two break phases.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

var (
	// ErrInvalidTransition is returned for commands that are not valid in
	// the current phase. State is left unchanged.
	ErrInvalidTransition = errors.New("session: invalid transition for current phase")

	// ErrInvalidTaskReference is returned by Start when the requested task
	// does not resolve to an active task. The session still starts, unbound.
	ErrInvalidTaskReference = errors.New("session: task not found in active list")
)

// Config holds the phase durations and the long-break cadence.
type Config struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakInterval  int // work completions per long break, >= 1
}

// DefaultConfig matches the classic 25/5/15 pomodoro with a long break
// every fourth work phase.
func DefaultConfig() Config {
	return Config{
		WorkDuration:       25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		LongBreakInterval:  4,
	}
}

// Duration returns the configured duration of a phase. Idle has none.
func (c Config) Duration(p Phase) time.Duration {
	switch p {
	case PhaseWork:
		return c.WorkDuration
	case PhaseShortBreak:
		return c.ShortBreakDuration
	case PhaseLongBreak:
		return c.LongBreakDuration
	}
	return 0
}

// Transition describes one completed phase. ActualDuration is the configured
// duration of the completed phase; a skipped phase is credited in full, same
// as a natural expiry.
type Transition struct {
	From           Phase
	To             Phase
	TaskID         *int64
	ActualDuration time.Duration
}

// Subscriber receives every completed-phase transition, in registration
// order, synchronously on the engine's goroutine.
type Subscriber interface {
	PhaseCompleted(t Transition)
}

// TaskResolver answers whether a task id currently refers to an active task.
// The engine holds task ids as weak references and looks them up at the
// moment of use, never across it.
type TaskResolver interface {
	TaskActive(id int64) bool
}

// Engine is the session state machine. It is not safe for concurrent use;
// all commands and ticks must come from a single event loop.
type Engine struct {
	cfg      Config
	resolver TaskResolver
	subs     []Subscriber

	phase     Phase
	remaining time.Duration
	paused    bool
	taskID    *int64
	cycles    int // work phases completed since the last long break
}

func NewEngine(cfg Config, resolver TaskResolver) *Engine {
	if cfg.LongBreakInterval < 1 {
		cfg.LongBreakInterval = 1
	}
	return &Engine{
		cfg:      cfg,
		resolver: resolver,
		phase:    PhaseIdle,
	}
}

// Subscribe appends a subscriber. Order of registration is the order of
// delivery.
func (e *Engine) Subscribe(s Subscriber) {
	e.subs = append(e.subs, s)
}

func (e *Engine) Phase() Phase             { return e.phase }
func (e *Engine) Remaining() time.Duration { return e.remaining }
func (e *Engine) Paused() bool             { return e.paused }
func (e *Engine) Cycles() int              { return e.cycles }
func (e *Engine) Config() Config           { return e.cfg }

// BoundTask returns the id of the task bound to the current session, or nil.
func (e *Engine) BoundTask() *int64 {
	if e.taskID == nil {
		return nil
	}
	id := *e.taskID
	return &id
}

// SetConfig replaces the durations and cadence. A countdown already in
// flight keeps its remaining time; an idle engine just adopts the new config.
func (e *Engine) SetConfig(cfg Config) {
	if cfg.LongBreakInterval < 1 {
		cfg.LongBreakInterval = 1
	}
	e.cfg = cfg
}

// Start begins a work phase from Idle. A taskID that does not resolve to an
// active task yields ErrInvalidTaskReference, but the session still starts
// unbound.
func (e *Engine) Start(taskID *int64) error {
	if e.phase != PhaseIdle {
		return ErrInvalidTransition
	}
	e.phase = PhaseWork
	e.remaining = e.cfg.WorkDuration
	e.paused = false
	e.taskID = nil

	if taskID != nil {
		if e.resolver != nil && e.resolver.TaskActive(*taskID) {
			id := *taskID
			e.taskID = &id
		} else {
			return ErrInvalidTaskReference
		}
	}
	return nil
}

// Tick advances the countdown by elapsed. When the countdown reaches zero the
// phase completes immediately and the fired transition is returned; otherwise
// Tick returns nil. Elapsed time past zero is discarded, so the next phase
// always starts at its full duration.
func (e *Engine) Tick(elapsed time.Duration) *Transition {
	if e.phase == PhaseIdle || e.paused {
		return nil
	}
	e.remaining -= elapsed
	if e.remaining > 0 {
		return nil
	}
	e.remaining = 0
	return e.completePhase()
}

// Pause suspends the countdown. Idempotent; invalid while Idle.
func (e *Engine) Pause() error {
	if e.phase == PhaseIdle {
		return ErrInvalidTransition
	}
	e.paused = true
	return nil
}

// Resume restarts a paused countdown. Idempotent; invalid while Idle.
func (e *Engine) Resume() error {
	if e.phase == PhaseIdle {
		return ErrInvalidTransition
	}
	e.paused = false
	return nil
}

// Toggle pauses a running countdown and resumes a paused one.
func (e *Engine) Toggle() error {
	if e.paused {
		return e.Resume()
	}
	return e.Pause()
}

// Reset aborts the session: back to Idle, countdown cleared, binding
// dropped. No completion event fires; an aborted session is not counted.
// The work-cycle counter survives, so the long-break cadence is unaffected.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.remaining = 0
	e.paused = false
	e.taskID = nil
}

// Skip forces the current phase to complete now, with the same transition
// and statistics semantics as a natural expiry.
func (e *Engine) Skip() (*Transition, error) {
	if e.phase == PhaseIdle {
		return nil, ErrInvalidTransition
	}
	e.remaining = 0
	return e.completePhase(), nil
}

func (e *Engine) completePhase() *Transition {
	from := e.phase
	t := Transition{
		From:           from,
		TaskID:         e.BoundTask(),
		ActualDuration: e.cfg.Duration(from),
	}

	var next Phase
	if from == PhaseWork {
		e.cycles++
		if e.cycles%e.cfg.LongBreakInterval == 0 {
			next = PhaseLongBreak
			e.cycles = 0
		} else {
			next = PhaseShortBreak
		}
	} else {
		// Auto-cycle back to work, carrying the bound task forward only
		// if it still resolves as active.
		next = PhaseWork
		if e.taskID != nil && (e.resolver == nil || !e.resolver.TaskActive(*e.taskID)) {
			e.taskID = nil
		}
	}

	t.To = next
	e.phase = next
	e.remaining = e.cfg.Duration(next)
	e.paused = false

	for _, s := range e.subs {
		s.PhaseCompleted(t)
	}
	return &t
}
